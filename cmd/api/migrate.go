package main

import (
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/logger"
	"github.com/comitanigiacomo/kanso-habits/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := migrations.Apply(cmd.Context(), db); err != nil {
			return err
		}

		logger.Info("schema is up to date", "database", cfg.DBName)
		return nil
	},
}
