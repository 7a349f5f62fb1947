// Package mock provides test doubles for the viewer's collaborators.
package mock

import (
	"context"

	"github.com/kyaoi/markread/internal/viewer"
)

// Interface compliance checks.
var (
	_ viewer.Host     = (*Host)(nil)
	_ viewer.Renderer = (*Renderer)(nil)
)

// Host is a test double for viewer.Host. Unset functions behave like an
// empty filesystem whose dialog is always cancelled.
type Host struct {
	ReadFileFn       func(ctx context.Context, path string) (string, error)
	ShowOpenDialogFn func(ctx context.Context, title string, filters []viewer.Filter) ([]string, error)
	OpenFn           func(url string)
}

// ReadFile delegates to ReadFileFn.
func (h *Host) ReadFile(ctx context.Context, path string) (string, error) {
	if h.ReadFileFn == nil {
		return "", ErrNotFound
	}
	return h.ReadFileFn(ctx, path)
}

// ShowOpenDialog delegates to ShowOpenDialogFn.
func (h *Host) ShowOpenDialog(ctx context.Context, title string, filters []viewer.Filter) ([]string, error) {
	if h.ShowOpenDialogFn == nil {
		return nil, nil
	}
	return h.ShowOpenDialogFn(ctx, title, filters)
}

// Open delegates to OpenFn.
func (h *Host) Open(url string) {
	if h.OpenFn != nil {
		h.OpenFn(url)
	}
}

// Renderer is a test double for viewer.Renderer.
type Renderer struct {
	RenderFn func(source string) (string, error)
}

// Render delegates to RenderFn.
func (r *Renderer) Render(source string) (string, error) {
	return r.RenderFn(source)
}
