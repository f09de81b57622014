package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"practicelog/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string
	var dbPath string

	cmd := &cobra.Command{
		Use:           "practicelog",
		Short:         "Practicelog is a practice journal for musicians",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			if strings.TrimSpace(dbPath) != "" {
				cfg.DBPath = dbPath
			}
			return cfg.Validate()
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides db_path)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newMigrateCmd(cfg, &jsonOutput),
		newUserCmd(cfg, &jsonOutput),
		newCalendarCmd(cfg, &jsonOutput),
		newExportCmd(cfg),
		newConfigCmd(cfg),
		newLoginCmd(cfg, &jsonOutput),
		newTopicCmd(cfg, &jsonOutput),
		newLogCmd(cfg, &jsonOutput),
	)

	return cmd
}
