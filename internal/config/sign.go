package config

import "path/filepath"

// SignEnvPrefix prefixes every signing environment variable.
const SignEnvPrefix = "SIGN_"

// Sign holds code-signing settings. Missing credentials are valid and mean
// signing is skipped.
type Sign struct {
	PFXPath      string `koanf:"pfx_path"`
	PFXPass      string `koanf:"pfx_pass"`
	TimestampURL string `koanf:"timestamp_url" validate:"required,url"`
	Description  string `koanf:"description" validate:"required"`
	Executable   string `koanf:"executable" validate:"required"`
}

// DefaultSign returns the signing defaults for the Windows build.
func DefaultSign() *Sign {
	return &Sign{
		TimestampURL: "http://timestamp.digicert.com",
		Description:  "MarkRead - Markdown Viewer",
		Executable:   filepath.Join("dist", "MarkRead", "MarkRead-win_x64.exe"),
	}
}

// LoadSign overlays SIGN_* variables on the defaults and validates the
// result.
func LoadSign() (*Sign, error) {
	cfg := DefaultSign()
	if err := loadEnv(SignEnvPrefix, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration contains valid values.
func (s *Sign) Validate() error {
	return validate(s)
}

// HasCredentials reports whether both certificate path and password are
// set.
func (s *Sign) HasCredentials() bool {
	return s.PFXPath != "" && s.PFXPass != ""
}
