package main

import (
	"fmt"

	"medication-reminder/internal/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DBDriver == config.DriverMemory {
				return fmt.Errorf("nothing to migrate: DB_DRIVER is %q", cfg.DBDriver)
			}

			_, _, closeStore, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			defer closeStore()

			log.Info("schema applied", map[string]any{"driver": cfg.DBDriver})
			return nil
		},
	}
}
