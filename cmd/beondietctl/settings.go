package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"beondiet/internal/config"
)

const (
	keyDatabaseURL          = "database_url"
	keyLogLevel             = "log_level"
	keyMacroDecimals        = "macro_decimals"
	keyRecomputeConcurrency = "recompute_concurrency"
)

// loadSettings layers an optional YAML file and the command line flags over
// the environment configuration in base. Flags win over the file, the file
// wins over the environment.
func loadSettings(path string, cmd *cobra.Command, base config.Config) (config.Config, error) {
	v := viper.New()
	v.SetDefault(keyDatabaseURL, base.Database.URL)
	v.SetDefault(keyLogLevel, base.Logging.Level)
	v.SetDefault(keyMacroDecimals, base.Macros.Decimals)
	v.SetDefault(keyRecomputeConcurrency, base.Macros.RecomputeConcurrency)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config.Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	flags := cmd.Flags()
	bindings := map[string]string{
		keyDatabaseURL:          "database-url",
		keyLogLevel:             "log-level",
		keyRecomputeConcurrency: "concurrency",
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return config.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfg := base
	cfg.Database.URL = v.GetString(keyDatabaseURL)
	cfg.Logging.Level = v.GetString(keyLogLevel)
	if decimals := v.GetInt(keyMacroDecimals); decimals > 0 {
		cfg.Macros.Decimals = decimals
	}
	if concurrency := v.GetInt(keyRecomputeConcurrency); concurrency > 0 {
		cfg.Macros.RecomputeConcurrency = concurrency
	}
	return cfg, nil
}
