package main

import (
	"database/sql"
	"fmt"

	"github.com/navbryce/heddit-be/config"
	appDb "github.com/navbryce/heddit-be/db"
	"github.com/navbryce/heddit-be/db/planetscale"
	"github.com/spf13/cobra"
)

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(appDb.MigrationsUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert every migration, dropping all data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(appDb.MigrationsDown)
	},
}

func withDB(fn func(db *sql.DB) error) error {
	db, err := planetscale.GetDatabase(config.Load().DB)
	if err != nil {
		return fmt.Errorf("received err when attempting to connect to DB: %w", err)
	}
	defer db.Close()
	return fn(db.GetSQLDB())
}
