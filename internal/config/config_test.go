// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Shell.Prompt != "arbor> " {
		t.Errorf("prompt = %q", cfg.Shell.Prompt)
	}
	if !cfg.History.Enabled {
		t.Error("history should be enabled by default")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[shell]
prompt = ">> "
sender = "ops"
permissions = ["admin", "mod.kick"]

[dispatch]
case_insensitive = true
async = true
workers = 8

[render]
help_style = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Shell.Prompt != ">> " {
		t.Errorf("prompt = %q", cfg.Shell.Prompt)
	}
	if cfg.Shell.Sender != "ops" {
		t.Errorf("sender = %q", cfg.Shell.Sender)
	}
	if len(cfg.Shell.Permissions) != 2 || cfg.Shell.Permissions[1] != "mod.kick" {
		t.Errorf("permissions = %v", cfg.Shell.Permissions)
	}
	if !cfg.Dispatch.CaseInsensitive || !cfg.Dispatch.Async {
		t.Error("dispatch flags not loaded")
	}
	if cfg.Dispatch.Workers != 8 {
		t.Errorf("workers = %d", cfg.Dispatch.Workers)
	}
	// Unset sections keep defaults.
	if cfg.History.Keep != 1000 {
		t.Errorf("history.keep = %d, want default 1000", cfg.History.Keep)
	}
}

func TestLoadFromPathInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[render]
help_style = "sepia"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error for bad help_style")
	}
	if !strings.Contains(err.Error(), "render.help_style") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := Default()
	cfg.Dispatch.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("workers=0 should fail validation")
	}

	cfg = Default()
	cfg.Dispatch.RateLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative rate_limit should fail validation")
	}

	cfg = Default()
	cfg.History.Keep = -5
	if err := cfg.Validate(); err == nil {
		t.Error("negative history.keep should fail validation")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ARBOR_PROMPT", "$ ")
	t.Setenv("ARBOR_SENDER", "jane")
	t.Setenv("ARBOR_NO_COLOR", "1")
	t.Setenv("ARBOR_CASE_INSENSITIVE", "true")
	t.Setenv("ARBOR_WORKERS", "16")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Shell.Prompt != "$ " {
		t.Errorf("prompt = %q", cfg.Shell.Prompt)
	}
	if cfg.Shell.Sender != "jane" {
		t.Errorf("sender = %q", cfg.Shell.Sender)
	}
	if cfg.Render.Color {
		t.Error("ARBOR_NO_COLOR should disable color")
	}
	if !cfg.Dispatch.CaseInsensitive {
		t.Error("ARBOR_CASE_INSENSITIVE should fold case")
	}
	if cfg.Dispatch.Workers != 16 {
		t.Errorf("workers = %d", cfg.Dispatch.Workers)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Shell.Prompt = "demo> "
	cfg.Dispatch.RateLimit = 2.5
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Shell.Prompt != "demo> " {
		t.Errorf("prompt = %q", loaded.Shell.Prompt)
	}
	if loaded.Dispatch.RateLimit != 2.5 {
		t.Errorf("rate_limit = %v", loaded.Dispatch.RateLimit)
	}
}

func TestClone(t *testing.T) {
	cfg := Default()
	cfg.Shell.Permissions = []string{"admin"}

	clone := cfg.Clone()
	clone.Shell.Permissions[0] = "mutated"

	if cfg.Shell.Permissions[0] != "admin" {
		t.Error("clone should not share the permissions slice")
	}
}
