package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/pagedeck/internal/config"
	"github.com/zjrosen/pagedeck/internal/log"
)

// localConfigPath is where a default config is written when none is found.
var localConfigPath = filepath.Join(".pagedeck", "config.yaml")

// loadConfig reads the config file with viper. Without --config the local
// file is preferred over the user file; when neither exists a default config
// is written to the local path. Keys missing from the file keep their defaults.
func loadConfig(explicit string) (config.Config, string, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	path := explicit
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		path = localConfigPath
		if err := config.WriteDefaultConfig(path); err != nil {
			log.Warn(log.CatConfig, "Could not write default config; using defaults", "path", path, "error", err)
			return config.Defaults(), "", nil
		}
		log.Info(log.CatConfig, "Wrote default config", "path", path)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return config.Config{}, path, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := config.Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return config.Config{}, path, fmt.Errorf("decoding config %s: %w", path, err)
	}
	log.Debug(log.CatConfig, "Loaded config", "path", path, "pages", len(cfg.PageManager.Pages))
	return cfg, path, nil
}

func findConfig() string {
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	userPath := filepath.Join(home, ".config", "pagedeck", "config.yaml")
	if _, err := os.Stat(userPath); err == nil {
		return userPath
	}
	return ""
}
