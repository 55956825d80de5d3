package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"beondiet/internal/db"
	applog "beondiet/internal/log"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ingredient, recipe and composition tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.AutoMigrate(database); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		applog.Info(cmd.Context(), "schema migrated")
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}
