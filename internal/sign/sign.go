// Package sign code-signs the Windows build with signtool.
package sign

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/kyaoi/markread/internal/config"
)

// Errors returned by Sign.
var (
	ErrExecutableNotFound  = errors.New("executable not found")
	ErrCertificateNotFound = errors.New("certificate file not found")
)

// Runner executes a command and waits for it.
type Runner func(ctx context.Context, name string, args ...string) error

// Result reports what Sign did.
type Result struct {
	Signed bool
	// Skipped is set when no credentials were configured.
	Skipped bool
}

// Sign signs cfg.Executable. Without credentials it logs a warning and
// returns a skipped Result.
func Sign(ctx context.Context, cfg *config.Sign, run Runner, log zerolog.Logger) (Result, error) {
	if _, err := os.Stat(cfg.Executable); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrExecutableNotFound, cfg.Executable)
	}

	if !cfg.HasCredentials() {
		log.Warn().Msg("SIGN_PFX_PATH or SIGN_PFX_PASS not set, skipping code signing")
		log.Warn().Msg("the unsigned executable may be flagged by Windows Defender or SmartScreen")
		return Result{Skipped: true}, nil
	}

	if _, err := os.Stat(cfg.PFXPath); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrCertificateNotFound, cfg.PFXPath)
	}

	log.Info().Str("executable", cfg.Executable).Msg("signing")
	if err := run(ctx, "signtool", Args(cfg)...); err != nil {
		return Result{}, fmt.Errorf("signtool: %w", err)
	}
	log.Info().Str("executable", cfg.Executable).Msg("signed")
	return Result{Signed: true}, nil
}

// Args returns the signtool arguments for cfg.
func Args(cfg *config.Sign) []string {
	return []string{
		"sign",
		"/f", cfg.PFXPath,
		"/p", cfg.PFXPass,
		"/fd", "SHA256",
		"/tr", cfg.TimestampURL,
		"/td", "SHA256",
		"/d", cfg.Description,
		cfg.Executable,
	}
}

// ExecRunner runs commands with their output attached to the process.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
