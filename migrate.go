package main

import (
	"fmt"

	"sova/config"
	"sova/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the donation tables",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	fmt.Println("Migration complete")
	return nil
}
