package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/launchify/internal/config"
	"github.com/aatumaykin/launchify/internal/constants"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate the launchify configuration file.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long: `Validate the configuration file and check for errors.
Without an argument the --config flag or the default location is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, used, err := config.LoadOrDefault(path)
		if err != nil {
			return err
		}
		if err := validationError(cfg.Validate()); err != nil {
			return err
		}

		if used == "" {
			fmt.Fprint(cmd.OutOrStdout(), constants.MsgConfigDefaults)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), constants.MsgConfigValid, used)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
