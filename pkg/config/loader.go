package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the common prefix stripped from environment variable names
// before they are mapped onto config keys, e.g. RCSPPD_LOG_LEVEL → log.level.
const envPrefix = "RCSPPD_"

// Loader layers configuration sources in increasing priority: built-in
// defaults, an optional YAML file, then environment variables.
type Loader struct {
	k          *koanf.Koanf
	configPath string
}

// LoaderOption configures a Loader at construction time.
type LoaderOption func(*Loader)

// WithConfigPath overrides the YAML file path (default: env CONFIG_PATH, or
// none, in which case only defaults and environment variables apply).
func WithConfigPath(path string) LoaderOption {
	return func(l *Loader) { l.configPath = path }
}

// NewLoader builds a Loader with the given options applied.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{k: koanf.New(".")}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs the full defaults → file → env pipeline and returns a validated
// Config.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadDefaults(); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := l.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("config: load file: %w", err)
	}
	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load, panicking on error.
func (l *Loader) MustLoad() *Config {
	cfg, err := l.Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (l *Loader) loadDefaults() error {
	defaults := map[string]any{
		"app.name":        "rcsppd",
		"app.environment": "development",

		"log.level":        "info",
		"log.format":       "json",
		"log.output":       "stdout",
		"log.file_path":    "rcsppd.log",
		"log.max_size_mb":  100,
		"log.max_backups":  3,
		"log.max_age_days": 28,
		"log.compress":     true,

		"metrics.enabled":   false,
		"metrics.port":      9090,
		"metrics.path":      "/metrics",
		"metrics.namespace": "rcsppd",

		"cache.enabled":     false,
		"cache.addr":        "localhost:6379",
		"cache.db":          0,
		"cache.default_ttl": "24h",

		"history.enabled":           false,
		"history.max_conns":         4,
		"history.conn_max_lifetime": "30m",

		"search.default_time_limit": "0s",
		"search.default_direction":  "both",
		"search.default_elementary": false,
	}
	return l.k.Load(confmap.Provider(defaults, "."), nil)
}

func (l *Loader) loadConfigFile() error {
	path := l.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return l.k.Load(file.Provider(path), yaml.Parser())
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil)
}
