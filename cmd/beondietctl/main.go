// Command beondietctl runs maintenance tasks against the beondiet database:
// schema migration, bulk ingredient import and recipe macro recomputation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"beondiet/internal/config"
	"beondiet/internal/db"
	applog "beondiet/internal/log"
	"beondiet/internal/services"
	"beondiet/internal/store"
)

var (
	flagConfigFile  string
	flagDatabaseURL string
	flagLogLevel    string

	settings config.Config
	database *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:           "beondietctl",
	Short:         "Maintenance commands for the beondiet database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		base, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg, err := loadSettings(flagConfigFile, cmd, base)
		if err != nil {
			return err
		}
		if err := applog.SetLevel(cfg.Logging.Level); err != nil {
			return err
		}
		if cfg.Database.URL == "" {
			return fmt.Errorf("a database url is required (--database-url, DATABASE_URL or config file)")
		}

		conn, err := db.Configure(cfg.Database)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		settings = cfg
		database = conn
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if database == nil {
			return nil
		}
		err := db.Close(database)
		database = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "database url (postgres://..., sqlite:path or file:path)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(recomputeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServices(conn *gorm.DB, cfg config.Config) *services.Services {
	return services.New(store.New(conn), services.Options{Decimals: cfg.Macros.Decimals})
}
