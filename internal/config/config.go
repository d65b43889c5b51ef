// Package config reads fitlog's runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. FITLOG_API_BASE_URL.
const Prefix = "fitlog"

type Config struct {
	// APIBaseURL is the root of the activity backend, e.g. https://health.example.com/api.
	// It is normally supplied at deploy time. When empty the client still starts, but
	// every network call fails.
	APIBaseURL string `split_words:"true"`

	// DataDir holds the session database and the log files. Defaults to ~/.fitlog.
	DataDir string `split_words:"true"`

	// LogLevel is a zerolog level name.
	LogLevel string `split_words:"true" default:"info"`

	// DevMode raises the log level to trace.
	DevMode bool `split_words:"true"`
}

// Parse loads an optional .env file from the working directory and then reads
// FITLOG_* variables into a Config.
func Parse() (*Config, error) {
	// a missing .env is the common case
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(homeDir, ".fitlog")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.APIBaseURL = NormalizeBaseURL(cfg.APIBaseURL)

	return &cfg, nil
}

// NormalizeBaseURL trims whitespace and trailing slashes so paths can be appended directly.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// SessionDBPath is the DuckDB file that backs the session store.
func (c *Config) SessionDBPath() string {
	return filepath.Join(c.DataDir, "session.duckdb")
}

// LogDir is where log files are written.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}
