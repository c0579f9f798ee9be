// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 3000 {
		t.Errorf("default port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("default backend = %q, want file", cfg.Storage.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveLoadTOMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.Port = 8080
	cfg.Storage.Backend = "sqlite"
	cfg.UI.CompactMode = true

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", loaded.Server.Port)
	}
	if loaded.Storage.Backend != "sqlite" {
		t.Errorf("backend = %q, want sqlite", loaded.Storage.Backend)
	}
	if !loaded.UI.CompactMode {
		t.Error("compact mode not preserved")
	}
}

func TestSaveLoadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Server.BaseURL = "https://files.example.com"

	if err := SaveJSON(cfg, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.Server.BaseURL != "https://files.example.com" {
		t.Errorf("base_url = %q", loaded.Server.BaseURL)
	}
}

func TestPartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := "[ui]\ntheme = \"light\"\n"
	if err := os.WriteFile(path, []byte(partial), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want default 3000", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("backend = %q, want default file", cfg.Storage.Backend)
	}
}

func TestMalformedTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nport = nope"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PARLOR_PORT", "9999")
	t.Setenv("PARLOR_STORAGE_BACKEND", "sqlite")
	t.Setenv("PARLOR_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
}

func TestEnvOverrideBadPortIgnored(t *testing.T) {
	t.Setenv("PARLOR_PORT", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want 3000 (bad env value ignored)", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, "ui.theme"},
		{"bad base url", func(c *Config) { c.Server.BaseURL = "://missing" }, "server.base_url"},
		{"negative rate", func(c *Config) { c.Server.RatePerSecond = -1 }, "server.rate_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}
