// Package config loads ~/.cast/config.yaml (SPEC_FULL §4.13): default idle cap, default theme,
// captured environment variable names, an ffmpeg path override, and a map of custom themes.
//
// Grounded on gopkg.in/yaml.v3.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amantus-ai/cast/pkg/theme"
)

// Config holds the optional user-level defaults (SPEC_FULL §3). A missing config file is not
// an error; the zero value has the documented defaults applied by IdleCap/ThemeName.
type Config struct {
	DefaultIdleCapSeconds float64           `yaml:"default_idle_cap"`
	DefaultThemeName      string            `yaml:"default_theme"`
	CapturedEnvKeys       []string          `yaml:"captured_env_keys"`
	FFmpegPath            string            `yaml:"ffmpeg_path"`
	Themes                map[string]yaml.Node `yaml:"themes"`
}

// DefaultIdleCap is the idle cap applied when the config doesn't specify one.
const DefaultIdleCap = 2 * time.Second

// DefaultThemeName is the theme applied when the config doesn't specify one.
const DefaultThemeName = theme.Default

// IdleCap returns the configured idle cap, or the package default if unset/non-positive.
func (c Config) IdleCap() time.Duration {
	if c.DefaultIdleCapSeconds <= 0 {
		return DefaultIdleCap
	}
	return time.Duration(c.DefaultIdleCapSeconds * float64(time.Second))
}

// ThemeName returns the configured default theme name, or DefaultThemeName if unset.
func (c Config) ThemeName() string {
	if c.DefaultThemeName == "" {
		return DefaultThemeName
	}
	return c.DefaultThemeName
}

// envConfigOverride is the env var that overrides the default config path (SPEC_FULL §6.3).
const envConfigOverride = "CAST_CONFIG"

// Path returns the config file path: $CAST_CONFIG if set, else ~/.cast/config.yaml.
func Path() (string, error) {
	if p := os.Getenv(envConfigOverride); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cast", "config.yaml"), nil
}

// Load reads and parses the config file. A missing file returns the zero Config and a nil
// error, per SPEC_FULL §4.13.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// CustomThemes decodes the config's `themes:` map into theme.Theme values, validating each via
// theme.ParseYAML (which rejects a non-16-entry palette with a theme.FormatError).
func (c Config) CustomThemes() (map[string]theme.Theme, error) {
	out := make(map[string]theme.Theme, len(c.Themes))
	for name, node := range c.Themes {
		raw, err := yaml.Marshal(node)
		if err != nil {
			return nil, err
		}
		th, err := theme.ParseYAML(name, raw)
		if err != nil {
			return nil, err
		}
		out[name] = th
	}
	return out, nil
}
