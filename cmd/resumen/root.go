package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"resumenapi/internal/config"
	"resumenapi/internal/infrastructure"
)

// cliState is shared by the subcommands once the root has loaded it.
type cliState struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	state := &cliState{}
	var logLevel string

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Summarize delivery workbooks per driver",
		Long:          "Reads a delivery export (.xlsx) and writes a copy with a per-driver summary sheet.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			logger, err := infrastructure.InitializeCLILogger(cfg.Logging)
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	cmd.AddCommand(newProcessCommand(state))
	cmd.AddCommand(newVersionCommand())

	return cmd
}
