// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/kyaoi/markread/internal/viewer"
)

// EnvPrefix prefixes every viewer environment variable.
const EnvPrefix = "MARKREAD_"

// Config holds viewer settings.
type Config struct {
	LogLevel    string `koanf:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFile     string `koanf:"log_file"`
	Watch       bool   `koanf:"watch"`
	PreviewPath string `koanf:"preview_path" validate:"required"`
	// Theme is the color scheme the viewer starts with.
	Theme string `koanf:"theme" validate:"theme"`
}

// DefaultConfig returns the settings used when the environment is silent.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		Watch:       true,
		Theme:       string(viewer.ThemeLight),
		PreviewPath: filepath.Join(os.TempDir(), "markread-preview.html"),
	}
}

// Load overlays MARKREAD_* variables on the defaults and validates the
// result.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if err := loadEnv(EnvPrefix, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	return validate(c)
}

// loadEnv unmarshals prefix-stripped, lower-cased variables into out:
// MARKREAD_LOG_LEVEL -> log_level.
func loadEnv(prefix string, out any) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}), nil); err != nil {
		return fmt.Errorf("loading env overrides: %w", err)
	}
	if err := k.Unmarshal("", out); err != nil {
		return fmt.Errorf("unmarshalling config: %w", err)
	}
	return nil
}
