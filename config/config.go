package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"tickethub-cli/store"
)

const (
	EnvCatalog  = "TICKETHUB_CATALOG"
	EnvDataDir  = "TICKETHUB_DATA_DIR"
	EnvLogLevel = "TICKETHUB_LOG_LEVEL"
	EnvLogFile  = "TICKETHUB_LOG_FILE"

	defaultLogLevel = "info"
	logFileName     = "tickethub.log"
)

type Config struct {
	// Catalog is a file path or http(s) URL; empty selects the built-in catalog.
	Catalog  string
	DataDir  string
	LogLevel string
	LogFile  string
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Catalog:  strings.TrimSpace(os.Getenv(EnvCatalog)),
		DataDir:  strings.TrimSpace(os.Getenv(EnvDataDir)),
		LogLevel: strings.TrimSpace(os.Getenv(EnvLogLevel)),
		LogFile:  strings.TrimSpace(os.Getenv(EnvLogFile)),
	}
	if cfg.DataDir == "" {
		dir, err := store.DefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, nil
}

// LogPath is where log output goes when no explicit file is configured.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, logFileName)
}
