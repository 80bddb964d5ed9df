// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cnfinity/local-app/pkg/model"
)

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.json"
	configMu      sync.RWMutex
)

// ConfigLoad loads the configuration from the JSON file.
// If the file doesn't exist, it creates a default configuration.
func ConfigLoad() error {
	// Ensure the data directory exists
	dataDir := filepath.Dir(configPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := defaultConfig()
		if err := ConfigSave(defaultConfig); err != nil {
			return fmt.Errorf("failed to create default config: %v", err)
		}
		setConfig(defaultConfig)
		return nil
	}

	// Read and parse the existing config file
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	// Unmarshal the config from JSON
	cfg := &model.Config{}
	if err := json.Unmarshal(file, cfg); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}

	applyDefaults(cfg)
	setConfig(cfg)
	return nil
}

// ConfigSave saves the provided configuration to the JSON file.
func ConfigSave(cfg *model.Config) error {
	// Marshal the config to JSON
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %v", err)
	}

	// Write the JSON data to the config file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return currentConfig
}

// ConfigPath returns the path of the configuration file on disk.
func ConfigPath() string {
	return configPath
}

func setConfig(cfg *model.Config) {
	configMu.Lock()
	defer configMu.Unlock()
	currentConfig = cfg
}

// defaultConfig returns the configuration written on first run.
func defaultConfig() *model.Config {
	return &model.Config{
		DatabaseDir:       "./data",
		DatabaseFile:      "cnfinity.db",
		DatabaseType:      "sqlite",
		LogFolder:         "./logs",
		CommandLog:        "commands.log",
		ErrorLog:          "errors.log",
		InfoLog:           "info.log",
		ReadlineHistory:   "./data/readline.history",
		HistoryDepth:      100,
		AutosaveSeconds:   30,
		DefaultDocument:   "scratch",
		DefaultNodeWidth:  160,
		DefaultNodeHeight: 90,
	}
}

// applyDefaults fills zero-valued fields so older config files keep working.
func applyDefaults(cfg *model.Config) {
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}
	if cfg.HistoryDepth <= 0 {
		cfg.HistoryDepth = 100
	}
	if cfg.AutosaveSeconds <= 0 {
		cfg.AutosaveSeconds = 30
	}
	if cfg.DefaultNodeWidth <= 0 {
		cfg.DefaultNodeWidth = 160
	}
	if cfg.DefaultNodeHeight <= 0 {
		cfg.DefaultNodeHeight = 90
	}
	if cfg.DefaultDocument == "" {
		cfg.DefaultDocument = "scratch"
	}
}
