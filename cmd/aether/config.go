package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFileName = ".aether.toml"

// Config is the CLI configuration read from .aether.toml.
type Config struct {
	Lint struct {
		// Enabled toggles the naming lint in `aether check`.
		Enabled bool `toml:"enabled"`
	} `toml:"lint"`
	REPL struct {
		// HistoryFile overrides the default ~/.aether_history.
		HistoryFile string `toml:"history_file"`
	} `toml:"repl"`
}

func defaultConfig() Config {
	var c Config
	c.Lint.Enabled = true
	return c
}

// loadConfig reads the explicit --config path, or searches for
// .aether.toml from the working directory upward. A missing file is not
// an error; the defaults apply.
func loadConfig(explicit string) (Config, error) {
	cfg := defaultConfig()

	path := explicit
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit == "" && os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return cfg, err
	}
	return cfg, nil
}

func findConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(dir, configFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func historyPath(cfg Config) string {
	if cfg.REPL.HistoryFile != "" {
		return cfg.REPL.HistoryFile
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".aether_history")
}
