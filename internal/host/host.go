// Package host implements the viewer's desktop-shell runtime on top of the
// operating system.
package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/kyaoi/markread/internal/viewer"
)

var _ viewer.Host = (*OS)(nil)

// ErrNotText is returned when a file is not valid UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// ErrNoDialog is returned when no dialog implementation is attached.
var ErrNoDialog = errors.New("no open dialog available")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dialog shows open-file dialogs.
type Dialog interface {
	ShowOpenDialog(ctx context.Context, title string, filters []viewer.Filter) ([]string, error)
}

// OS is the viewer.Host backed by the local filesystem and the system's
// URL handler.
type OS struct {
	dialog Dialog
	log    zerolog.Logger
	start  func(name string, args ...string) error
}

// NewOS returns a host that shows dialogs through dialog.
func NewOS(dialog Dialog, log zerolog.Logger) *OS {
	return &OS{
		dialog: dialog,
		log:    log,
		start:  startCommand,
	}
}

// ReadFile reads path as UTF-8 text. A leading byte order mark is dropped.
func (h *OS) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// ShowOpenDialog delegates to the attached dialog.
func (h *OS) ShowOpenDialog(ctx context.Context, title string, filters []viewer.Filter) ([]string, error) {
	if h.dialog == nil {
		return nil, ErrNoDialog
	}
	return h.dialog.ShowOpenDialog(ctx, title, filters)
}

// Open starts the system handler for url and does not wait for it.
func (h *OS) Open(url string) {
	name, args := openCommand(runtime.GOOS, url)
	if err := h.start(name, args...); err != nil {
		h.log.Error().Err(err).Str("url", url).Msg("failed to open url")
	}
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}

func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
