// Package config loads client configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides. Each one, when set, wins over the
// config file value.
const (
	EnvAPIURL   = "BOOKWORM_API_URL"
	EnvDatabase = "BOOKWORM_DATABASE"
	EnvPageSize = "BOOKWORM_PAGE_SIZE"
	EnvTimeout  = "BOOKWORM_TIMEOUT"
)

// Config holds the client settings.
type Config struct {
	// APIURL is the backend root URL.
	APIURL string `yaml:"api_url"`

	// Database is the path to the local SQLite database.
	Database string `yaml:"database"`

	// PageSize is the feed page size requested from the backend.
	PageSize int `yaml:"page_size"`

	// Timeout bounds each API request as a Go duration string
	// (e.g. "10s"). Empty means no client-side timeout; the
	// transport's defaults govern.
	Timeout string `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		APIURL:   "http://localhost:3000",
		Database: filepath.Join(home, ".bookworm", "bookworm.db"),
		PageSize: 2,
	}
}

// DefaultPath returns the default config file location
// (~/.bookworm/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".bookworm", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides, and returns the result. A missing file is not
// an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file; defaults apply.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequestTimeout parses Timeout into a duration. Empty means zero
// (no client-side timeout).
func (c Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}

func (c *Config) applyEnv() error {
	c.APIURL = getEnv(EnvAPIURL, c.APIURL)
	c.Database = getEnv(EnvDatabase, c.Database)
	c.Timeout = getEnv(EnvTimeout, c.Timeout)

	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", EnvPageSize, v)
		}
		c.PageSize = n
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
