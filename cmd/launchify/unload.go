package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/launchify/internal/constants"
	"github.com/aatumaykin/launchify/internal/install"
	"github.com/aatumaykin/launchify/internal/job"
	"github.com/aatumaykin/launchify/internal/launchctl"
	"github.com/aatumaykin/launchify/internal/logger"
)

var unloadRemove bool

// unloadCmd represents the unload command
var unloadCmd = &cobra.Command{
	Use:   "unload <name>",
	Short: "Stop a scheduled job",
	Long: `Unload the launchd agent created for <name> so it stops running.
With --remove the agent file is deleted as well, so the job does not come back
at the next login.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnload,
}

func init() {
	unloadCmd.Flags().BoolVar(&unloadRemove, "remove", false, "Also delete the agent file")
}

func runUnload(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := job.ValidateName(name); err != nil {
		return fmt.Errorf("%w %q: %v", job.ErrInvalidName, name, err)
	}

	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Close()

	label := cfg.Job.LabelPrefix + name
	inst := install.New(cfg.Paths.LaunchAgentsDir, log)
	path := inst.Path(label)
	if !inst.Exists(label) {
		return fmt.Errorf(constants.MsgAgentNotFound, name, path)
	}

	out := cmd.OutOrStdout()
	client := launchctl.New(cfg.Job.Launchctl, nil, log)
	if err := client.Unload(cmd.Context(), path); err != nil {
		if !unloadRemove {
			return err
		}
		log.Warn("Failed to unload agent",
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "error", Value: err})
		fmt.Fprintf(cmd.ErrOrStderr(), constants.MsgUnloadFailed, label, err)
	} else {
		fmt.Fprintf(out, constants.MsgUnloaded, label)
	}

	if unloadRemove {
		removed, err := inst.Remove(label)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, constants.MsgRemoved, removed)
	}
	return nil
}
