package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minder/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "minder",
		Short: "Minder is a local project and task memory for coding agents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newProjectCmd(cfg, &jsonOutput),
		newTaskCmd(cfg, &jsonOutput),
		newSubtaskCmd(cfg, &jsonOutput),
		newDepCmd(cfg, &jsonOutput),
		newNoteCmd(cfg, &jsonOutput),
		newMetaCmd(cfg, &jsonOutput),
		newTemplateCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
		newMigrateCmd(cfg, &jsonOutput),
	)

	return cmd
}
