package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CAST_CONFIG", filepath.Join(dir, "does-not-exist.yaml"))
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.IdleCap() != DefaultIdleCap {
		t.Fatalf("expected default idle cap for missing config, got %v", c.IdleCap())
	}
	if c.ThemeName() != DefaultThemeName {
		t.Fatalf("expected default theme name for missing config, got %q", c.ThemeName())
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
default_idle_cap: 5
default_theme: dracula
captured_env_keys: ["TERM", "SHELL"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("CAST_CONFIG", path)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ThemeName() != "dracula" {
		t.Fatalf("expected theme override 'dracula', got %q", c.ThemeName())
	}
	if len(c.CapturedEnvKeys) != 2 {
		t.Fatalf("expected 2 captured env keys, got %d", len(c.CapturedEnvKeys))
	}
}

func TestCustomThemesRejectsShortPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
themes:
  broken:
    background: "#000000"
    foreground: "#ffffff"
    cursor: "#ffffff"
    palette: ["#000000", "#111111"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("CAST_CONFIG", path)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := c.CustomThemes(); err == nil {
		t.Fatalf("expected CustomThemes to reject a palette with fewer than 16 entries")
	}
}
