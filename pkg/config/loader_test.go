package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_LoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "rcsppd" {
		t.Errorf("App.Name = %q, want rcsppd", cfg.App.Name)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Search.DefaultDirection != "both" {
		t.Errorf("Search.DefaultDirection = %q, want both", cfg.Search.DefaultDirection)
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("Metrics.Port = %d, want 9090", cfg.Metrics.Port)
	}
}

func TestLoader_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app:
  name: custom-rcsppd
  environment: production
log:
  level: debug
search:
  default_direction: forward
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := NewLoader(WithConfigPath(path)).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "custom-rcsppd" {
		t.Errorf("App.Name = %q, want custom-rcsppd", cfg.App.Name)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Search.DefaultDirection != "forward" {
		t.Errorf("Search.DefaultDirection = %q, want forward", cfg.Search.DefaultDirection)
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() true")
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	t.Setenv("RCSPPD_APP_NAME", "env-rcsppd")
	defer os.Unsetenv("RCSPPD_APP_NAME")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  name: file-rcsppd\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := NewLoader(WithConfigPath(path)).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "env-rcsppd" {
		t.Errorf("App.Name = %q, want env-rcsppd", cfg.App.Name)
	}
}

func TestLoader_MissingFileIsNotAnError(t *testing.T) {
	_, err := NewLoader(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
}
