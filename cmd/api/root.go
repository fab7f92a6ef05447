package main

import (
	"os"

	"medication-reminder/internal/config"
	"medication-reminder/internal/platform/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           "medremind",
		Short:         "Medication reminder service for caregivers and elders",
		SilenceUsage:  true,
		SilenceErrors: true,
		// sin subcomando arranca el servidor
		RunE: serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd(), newRemindCmd())
	return root
}

func loadConfig() (config.Config, logger.Logger, error) {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Out:    os.Stdout,
	})
	if err := cfg.Validate(); err != nil {
		return cfg, log, err
	}
	return cfg, log, nil
}
