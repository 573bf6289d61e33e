// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// arbor shell.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - $ARBOR_CONFIG (explicit path)
//   - ~/.arbor/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/arbor/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete arbor shell configuration.
type Config struct {
	// Shell settings
	Shell ShellConfig `toml:"shell"`

	// History persistence settings
	History HistoryConfig `toml:"history"`

	// Dispatch settings
	Dispatch DispatchConfig `toml:"dispatch"`

	// Rendering settings
	Render RenderConfig `toml:"render"`
}

// ShellConfig contains interactive shell configuration.
type ShellConfig struct {
	// Prompt is the string printed before each input line.
	Prompt string `toml:"prompt"`
	// Sender is the name the shell identifies itself as when dispatching.
	Sender string `toml:"sender"`
	// Permissions lists the permission nodes granted to the shell sender.
	Permissions []string `toml:"permissions"`
}

// HistoryConfig contains command history configuration.
type HistoryConfig struct {
	// Enabled controls whether history is recorded at all.
	Enabled bool `toml:"enabled"`
	// Path is the history database file (empty = ~/.arbor/history.db).
	Path string `toml:"path"`
	// Keep is the number of entries retained across sessions.
	Keep int `toml:"keep"`
}

// DispatchConfig contains command dispatch configuration.
type DispatchConfig struct {
	// CaseInsensitive matches literal words without regard to case.
	CaseInsensitive bool `toml:"case_insensitive"`
	// Async runs handlers on a worker pool instead of inline.
	Async bool `toml:"async"`
	// Workers is the worker pool size when Async is enabled.
	Workers int `toml:"workers"`
	// RateLimit is the per-sender command rate in commands/second
	// (0 = unlimited).
	RateLimit float64 `toml:"rate_limit"`
	// RateBurst is the per-sender burst allowance when RateLimit is set.
	RateBurst int `toml:"rate_burst"`
}

// RenderConfig contains output rendering configuration.
type RenderConfig struct {
	// Color enables styled terminal output. Ignored when stdout is not
	// a terminal.
	Color bool `toml:"color"`
	// HelpStyle is the glamour style used for rendered help: "dark",
	// "light", "notty", "auto".
	HelpStyle string `toml:"help_style"`
	// Width is the wrap width for rendered help (0 = detect from terminal).
	Width int `toml:"width"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Shell: ShellConfig{
			Prompt:      "arbor> ",
			Sender:      "console",
			Permissions: nil, // console bypasses permission checks
		},

		History: HistoryConfig{
			Enabled: true,
			Path:    "",
			Keep:    1000,
		},

		Dispatch: DispatchConfig{
			CaseInsensitive: false,
			Async:           false,
			Workers:         4,
			RateLimit:       0, // unlimited
			RateBurst:       5,
		},

		Render: RenderConfig{
			Color:     true,
			HelpStyle: "auto",
			Width:     0, // detect
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the arbor configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".arbor"), nil
}

// ConfigPath returns the path to the TOML config file. The ARBOR_CONFIG
// environment variable overrides the default location.
func ConfigPath() (string, error) {
	if p := os.Getenv("ARBOR_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath resolves the history database path, falling back to the
// default location under the config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
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

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	cfg.SetDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetDefaults fills in default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Shell.Prompt == "" {
		c.Shell.Prompt = defaults.Shell.Prompt
	}
	if c.Shell.Sender == "" {
		c.Shell.Sender = defaults.Shell.Sender
	}

	if c.History.Keep == 0 {
		c.History.Keep = defaults.History.Keep
	}

	if c.Dispatch.Workers == 0 {
		c.Dispatch.Workers = defaults.Dispatch.Workers
	}
	if c.Dispatch.RateBurst == 0 {
		c.Dispatch.RateBurst = defaults.Dispatch.RateBurst
	}

	if c.Render.HelpStyle == "" {
		c.Render.HelpStyle = defaults.Render.HelpStyle
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# arbor shell configuration file\n")
	buf.WriteString("# Generated by arbor - edit with care\n\n")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
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

	if c.History.Keep < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.keep",
			Message: "must be non-negative",
		})
	}

	if c.Dispatch.Workers < 1 || c.Dispatch.Workers > 256 {
		errs = append(errs, ValidationError{
			Field:   "dispatch.workers",
			Message: fmt.Sprintf("must be 1-256, got %d", c.Dispatch.Workers),
		})
	}

	if c.Dispatch.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "dispatch.rate_limit",
			Message: "must be non-negative",
		})
	}

	if c.Dispatch.RateBurst < 1 {
		errs = append(errs, ValidationError{
			Field:   "dispatch.rate_burst",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Dispatch.RateBurst),
		})
	}

	validStyles := map[string]bool{"dark": true, "light": true, "notty": true, "auto": true}
	if !validStyles[strings.ToLower(c.Render.HelpStyle)] {
		errs = append(errs, ValidationError{
			Field:   "render.help_style",
			Message: fmt.Sprintf("invalid style '%s', must be one of: dark, light, notty, auto", c.Render.HelpStyle),
		})
	}

	if c.Render.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "render.width",
			Message: "must be non-negative",
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

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ARBOR_PROMPT: overrides shell.prompt
//   - ARBOR_SENDER: overrides shell.sender
//   - ARBOR_NO_COLOR / NO_COLOR: disables styled output
//   - ARBOR_HISTORY: set to "0" or "false" to disable history
//   - ARBOR_CASE_INSENSITIVE: set to "1" or "true" to fold literal case
//   - ARBOR_WORKERS: overrides dispatch.workers
func (c *Config) ApplyEnvOverrides() {
	if prompt := os.Getenv("ARBOR_PROMPT"); prompt != "" {
		c.Shell.Prompt = prompt
	}

	if sender := os.Getenv("ARBOR_SENDER"); sender != "" {
		c.Shell.Sender = sender
	}

	if os.Getenv("ARBOR_NO_COLOR") != "" || os.Getenv("NO_COLOR") != "" {
		c.Render.Color = false
	}

	if hist := os.Getenv("ARBOR_HISTORY"); hist != "" {
		c.History.Enabled = hist != "0" && strings.ToLower(hist) != "false"
	}

	if ci := os.Getenv("ARBOR_CASE_INSENSITIVE"); ci != "" {
		c.Dispatch.CaseInsensitive = ci == "1" || strings.ToLower(ci) == "true"
	}

	if workers := os.Getenv("ARBOR_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			c.Dispatch.Workers = n
		}
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Shell.Permissions != nil {
		clone.Shell.Permissions = append([]string(nil), c.Shell.Permissions...)
	}
	return &clone
}
