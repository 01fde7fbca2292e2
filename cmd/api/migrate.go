package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/invoice-manager/backend/config"
	"github.com/invoice-manager/backend/internal/infra/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		database, err := db.NewConnection(&cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(); err != nil {
			return err
		}
		slog.Info("Database migrations completed successfully", "driver", cfg.Database.Driver)
		return nil
	},
}
