package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/launchify/internal/config"
	"github.com/aatumaykin/launchify/internal/constants"
	"github.com/aatumaykin/launchify/internal/logger"
)

var (
	configPath string
	debug      bool
)

// rootCmd schedules a program; subcommands manage what it created.
var rootCmd = &cobra.Command{
	Use:   "launchify <duration> <executable>",
	Short: "Schedule a program to run periodically with launchd",
	Long: `launchify writes a launchd agent that runs <executable> every <duration>
and loads it with launchctl.

<duration> is a number followed by s, m, h or d (for example 30s, 5m, 1h, 2d).
<executable> is a path, or a name looked up in PATH.

The agent is written to ~/Library/LaunchAgents/com.<name>.plist and the program's
output goes to ~/logs/<name>/stdout.log and stderr.log. Scheduling the same name
again replaces the previous agent.`,
	Example: `  launchify 5m myprog
  launchify 1h ./backup.sh --args="--foo bar" --name=my_awesome_program
  launchify 30s myprog --dry-run`,
	Version:      Version,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runSchedule,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: ~/.config/launchify/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(unloadCmd)
}

// setup loads and validates the configuration and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, _, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := validationError(cfg.Validate()); err != nil {
		return nil, nil, err
	}

	if debug {
		cfg.Logging.Level = "debug"
	}

	logCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if strings.EqualFold(cfg.Logging.Output, "stderr") {
		logCfg.Writer = cmd.ErrOrStderr()
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

func validationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(constants.MsgConfigValidationError)
	for _, e := range errs {
		fmt.Fprintf(&b, constants.MsgConfigValidatePrefix, e)
	}
	return fmt.Errorf("%s", strings.TrimSuffix(b.String(), "\n"))
}
