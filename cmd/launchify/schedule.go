package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/launchify/internal/constants"
	"github.com/aatumaykin/launchify/internal/duration"
	"github.com/aatumaykin/launchify/internal/install"
	"github.com/aatumaykin/launchify/internal/job"
	"github.com/aatumaykin/launchify/internal/launchctl"
	"github.com/aatumaykin/launchify/internal/logger"
	"github.com/aatumaykin/launchify/internal/plist"
)

const (
	formatPlist = "plist"
	formatYAML  = "yaml"
)

var (
	scheduleArgs      string
	scheduleName      string
	scheduleWorkDir   string
	scheduleDryRun    bool
	scheduleFormat    string
	scheduleNoLoad    bool
	scheduleNoClobber bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&scheduleArgs, "args", "", `Arguments passed to the program, split like a shell would (e.g. --args="--foo bar")`)
	flags.StringVar(&scheduleName, "name", "", "Job name (default: executable file name without extension)")
	flags.StringVar(&scheduleWorkDir, "working-dir", "", "Working directory for the program (default: current directory)")
	flags.BoolVar(&scheduleDryRun, "dry-run", false, "Print what would be written without touching the filesystem")
	flags.StringVar(&scheduleFormat, "format", formatPlist, "Dry run output: plist or yaml")
	flags.BoolVar(&scheduleNoLoad, "no-load", false, "Write the agent file but do not load it with launchctl")
	flags.BoolVar(&scheduleNoClobber, "no-clobber", false, "Fail instead of replacing an existing agent with the same name")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	interval, err := duration.Parse(args[0])
	if err != nil {
		return err
	}

	format := strings.ToLower(scheduleFormat)
	if format != formatPlist && format != formatYAML {
		return fmt.Errorf("invalid --format %q (expected: plist, yaml)", scheduleFormat)
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	desc, err := job.Build(job.Options{
		Executable:  args[1],
		Name:        scheduleName,
		Args:        scheduleArgs,
		WorkingDir:  scheduleWorkDir,
		Interval:    interval,
		LogRoot:     cfg.Paths.LogRoot,
		LabelPrefix: cfg.Job.LabelPrefix,
	}, job.OSEnv())
	if err != nil {
		return err
	}

	log.Debug("Job resolved",
		logger.Field{Key: "label", Value: desc.Label},
		logger.Field{Key: "program", Value: desc.ExecutablePath},
		logger.Field{Key: "args", Value: desc.Args},
		logger.Field{Key: "interval_seconds", Value: desc.Interval.Seconds()})

	doc := plist.Render(desc)
	inst := install.New(cfg.Paths.LaunchAgentsDir, log, install.WithNoClobber(scheduleNoClobber))
	out := cmd.OutOrStdout()

	if scheduleDryRun {
		return printDryRun(out, inst.Path(desc.Label), desc, doc, format)
	}

	path, err := inst.Install(desc.Label, doc, desc.LogDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, constants.MsgScheduled, desc.Name, desc.Interval)
	fmt.Fprintf(out, constants.MsgWrote, path)
	fmt.Fprintf(out, constants.MsgLogs, desc.LogDir)

	if scheduleNoLoad || !cfg.Job.ShouldLoad() {
		fmt.Fprintf(out, constants.MsgLoadSkipped, path)
	} else {
		client := launchctl.New(cfg.Job.Launchctl, nil, log)
		if err := client.Load(cmd.Context(), path); err != nil {
			// The agent file is already in place; launchd picks it up at next login.
			log.Warn("Failed to load agent",
				logger.Field{Key: "path", Value: path},
				logger.Field{Key: "error", Value: err})
			fmt.Fprintf(cmd.ErrOrStderr(), constants.MsgLoadFailed, err, path)
		} else {
			fmt.Fprintf(out, constants.MsgLoaded, desc.Label)
		}
	}

	next := desc.Interval.NextRuns(time.Now(), constants.NextRunsPreview)
	fmt.Fprintf(out, constants.MsgNextRuns, desc.Interval, formatTimes(next))
	fmt.Fprintf(out, constants.MsgUnloadHint, desc.Name, path)
	return nil
}

func printDryRun(out io.Writer, path string, desc *job.Descriptor, doc []byte, format string) error {
	fmt.Fprintf(out, constants.MsgDryRunHeader, path)

	if format == formatYAML {
		data, err := yaml.Marshal(desc)
		if err != nil {
			return fmt.Errorf("failed to encode job: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	_, err := out.Write(doc)
	return err
}

func formatTimes(times []time.Time) string {
	parts := make([]string, 0, len(times))
	for _, t := range times {
		parts = append(parts, t.Format(time.DateTime))
	}
	return strings.Join(parts, ", ")
}
