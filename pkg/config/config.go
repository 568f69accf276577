// Package config defines rcsppd's layered configuration: defaults, then an
// optional YAML file, then environment variables, in that priority order.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the daemon's full configuration tree.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Cache   CacheConfig   `koanf:"cache"`
	History HistoryConfig `koanf:"history"`
	Search  SearchConfig  `koanf:"search"`
}

// AppConfig holds process-identity settings.
type AppConfig struct {
	Name        string `koanf:"name"`
	Environment string `koanf:"environment"` // development, production
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level      string `koanf:"level"`  // debug, info, warn, error
	Format     string `koanf:"format"` // json, text
	Output     string `koanf:"output"` // stdout, file
	FilePath   string `koanf:"file_path"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig configures the Prometheus exporter.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Port      int    `koanf:"port"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
}

// CacheConfig configures the optional Redis-backed lower-bound table cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Addr       string        `koanf:"addr"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
}

// Address returns host:port for the cache backend.
func (c CacheConfig) Address() string { return c.Addr }

// HistoryConfig configures the optional Postgres-backed run-history store.
type HistoryConfig struct {
	Enabled         bool          `koanf:"enabled"`
	DSN             string        `koanf:"dsn"`
	MaxConns        int32         `koanf:"max_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// SearchConfig holds the engine defaults a run uses when the CLI does not
// override them.
type SearchConfig struct {
	DefaultTimeLimit time.Duration `koanf:"default_time_limit"`
	DefaultDirection string        `koanf:"default_direction"` // forward, backward, both
	DefaultElementary bool         `koanf:"default_elementary"`
}

// Validate checks field-level constraints after loading.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}

	validDirections := map[string]bool{"forward": true, "backward": true, "both": true}
	if c.Search.DefaultDirection != "" && !validDirections[strings.ToLower(c.Search.DefaultDirection)] {
		errs = append(errs, fmt.Sprintf("search.default_direction must be one of forward, backward, both, got %q", c.Search.DefaultDirection))
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		errs = append(errs, fmt.Sprintf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsProduction reports whether the app is configured for production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
