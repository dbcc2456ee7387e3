package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.MaxUploadBytes() != 16<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes(), 16<<20)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.Database = "other.db"
	original.Theme.Fixed = "night"
	original.Effects.Seed = 42

	if err := original.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Port)
	}
	if loaded.Database != "other.db" {
		t.Errorf("database: got %q", loaded.Database)
	}
	if loaded.Theme.Fixed != "night" {
		t.Errorf("theme.fixed: got %q", loaded.Theme.Fixed)
	}
	if loaded.Effects.Seed != 42 {
		t.Errorf("effects.seed: got %d", loaded.Effects.Seed)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme.NightStart != 18 || cfg.Theme.NightEnd != 6 {
		t.Errorf("unexpected theme hours %d/%d", cfg.Theme.NightStart, cfg.Theme.NightEnd)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("PORTFOLIO_SMTP__PASS", "secret")
	t.Setenv("PORTFOLIO_MAX_UPLOAD_MB", "4")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7000 {
		t.Errorf("port: got %d, want 7000", cfg.Port)
	}
	if cfg.SMTP.User != "me@example.com" {
		t.Errorf("smtp.user: got %q", cfg.SMTP.User)
	}
	if cfg.SMTP.Pass != "secret" {
		t.Errorf("smtp.pass: got %q", cfg.SMTP.Pass)
	}
	if !cfg.SMTP.Configured() {
		t.Error("expected SMTP to be configured")
	}
	if cfg.MaxUploadMB != 4 {
		t.Errorf("max_upload_mb: got %d", cfg.MaxUploadMB)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Port = 70000 }},
		{"gin mode", func(c *Config) { c.GinMode = "loud" }},
		{"theme", func(c *Config) { c.Theme.Fixed = "dusk" }},
		{"hours", func(c *Config) { c.Theme.NightStart = 24 }},
		{"upload", func(c *Config) { c.MaxUploadMB = 0 }},
		{"fps", func(c *Config) { c.Effects.FPS = 0 }},
		{"admin", func(c *Config) { c.Admin.Username = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
