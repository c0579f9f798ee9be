// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/parlorchat/parlor-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete parlor configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Server configuration for the upload relay
	Server ServerConfig `toml:"server" json:"server"`

	// Storage configuration for session persistence
	Storage StorageConfig `toml:"storage" json:"storage"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig contains upload relay server configuration.
type ServerConfig struct {
	// Port is the TCP port the relay listens on.
	Port int `toml:"port" json:"port"`
	// UploadDir is where uploaded files are stored.
	UploadDir string `toml:"upload_dir" json:"upload_dir"`
	// BaseURL is the public URL prefix used when building file URLs.
	// Empty means derive from the request host.
	BaseURL string `toml:"base_url" json:"base_url"`
	// AllowedOrigins lists origins permitted to call the relay.
	AllowedOrigins []string `toml:"allowed_origins" json:"allowed_origins"`
	// RatePerSecond and RateBurst tune the per-client rate limiter.
	RatePerSecond float64 `toml:"rate_per_second" json:"rate_per_second"`
	RateBurst     int     `toml:"rate_burst" json:"rate_burst"`
}

// StorageConfig contains session persistence configuration.
type StorageConfig struct {
	// Backend selects the persistence backend: "file" or "sqlite".
	Backend string `toml:"backend" json:"backend"`
	// Path is the state directory (file backend) or database file (sqlite).
	// Empty means the per-backend default under ~/.parlor.
	Path string `toml:"path" json:"path"`
}

// UIConfig contains user interface preferences.
type UIConfig struct {
	// Theme is the color theme: "dark", "light", or "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowTimestamps toggles per-message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// CompactMode reduces message padding.
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// MarkdownRendering enables rendering of markdown in bot messages.
	MarkdownRendering bool `toml:"markdown_rendering" json:"markdown_rendering"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Port:           3000,
			UploadDir:      "uploads",
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
			RatePerSecond:  5,
			RateBurst:      20,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		UI: UIConfig{
			Theme:             "dark",
			ShowTimestamps:    true,
			MarkdownRendering: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the parlor configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".parlor"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
func Load() (*Config, error) {
	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := loadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := loadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

func loadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// fillDefaults replaces zero values with defaults after a partial file load.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = def.Server.UploadDir
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = def.Server.AllowedOrigins
	}
	if c.Server.RatePerSecond == 0 {
		c.Server.RatePerSecond = def.Server.RatePerSecond
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = def.Server.RateBurst
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML location.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# parlor configuration file")
	fmt.Fprintln(file, "# Generated by parlor - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("invalid port %d, must be 1-65535", c.Server.Port),
		})
	}

	if c.Server.BaseURL != "" {
		if u, err := url.Parse(c.Server.BaseURL); err != nil || u.Scheme == "" {
			errs = append(errs, ValidationError{
				Field:   "server.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Server.BaseURL),
			})
		}
	}

	if c.Server.RatePerSecond < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.rate_per_second",
			Message: "rate cannot be negative",
		})
	}

	validBackends := map[string]bool{"file": true, "sqlite": true}
	if !validBackends[strings.ToLower(c.Storage.Backend)] {
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite", c.Storage.Backend),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PARLOR_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	// PARLOR_PORT
	if port := os.Getenv("PARLOR_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			c.Server.Port = n
		}
	}

	// PARLOR_UPLOAD_DIR
	if dir := os.Getenv("PARLOR_UPLOAD_DIR"); dir != "" {
		c.Server.UploadDir = dir
	}

	// PARLOR_BASE_URL
	if base := os.Getenv("PARLOR_BASE_URL"); base != "" {
		c.Server.BaseURL = base
	}

	// PARLOR_STORAGE_BACKEND
	if backend := os.Getenv("PARLOR_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}

	// PARLOR_STORAGE_PATH
	if path := os.Getenv("PARLOR_STORAGE_PATH"); path != "" {
		c.Storage.Path = path
	}

	// PARLOR_THEME
	if theme := os.Getenv("PARLOR_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}
