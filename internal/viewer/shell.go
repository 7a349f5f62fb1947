// Package viewer holds the state of the MarkRead window and every
// operation the user or the OS can trigger on it.
package viewer

import (
	"context"

	"github.com/rs/zerolog"
)

// About dialog content.
const (
	AppName     = "MarkRead"
	AboutAuthor = "ManiG"
	AboutURL    = "https://ManiG.dev"
)

// AboutTarget identifies where a click on the about overlay landed.
type AboutTarget int

const (
	AboutBackground AboutTarget = iota
	AboutCard
	AboutClose
	AboutLink
)

// LoadResult is the outcome of reading a file through the host.
type LoadResult struct {
	Path string
	Text string
	Err  error
}

// DialogResult is the outcome of an open dialog.
type DialogResult struct {
	Paths []string
	Err   error
}

// Shell owns the Session and exposes its interaction handlers. It is not
// safe for concurrent use: handlers must run on the UI goroutine. Read and
// ShowDialog only touch the host and may run elsewhere.
type Shell struct {
	host     Host
	renderer Renderer
	log      zerolog.Logger
	session  Session
}

// NewShell returns a Shell with a default Session.
func NewShell(host Host, renderer Renderer, log zerolog.Logger) *Shell {
	return &Shell{
		host:     host,
		renderer: renderer,
		log:      log,
		session:  NewSession(),
	}
}

// Session returns a copy of the current state.
func (s *Shell) Session() Session {
	return s.session
}

// View derives the presentation of the current state.
func (s *Shell) View() View {
	return Derive(s.session, s.renderer)
}

// Initialize loads the file handed over by the OS file association, if
// any.
func (s *Shell) Initialize(ctx context.Context, args []string) {
	path, ok := LaunchPath(args)
	if !ok {
		return
	}
	s.log.Debug().Str("path", path).Msg("launch argument")
	s.LoadFile(ctx, path)
}

// LoadFile replaces the document with the content of path.
func (s *Shell) LoadFile(ctx context.Context, path string) {
	s.BeginLoad(path)
	s.FinishLoad(s.Read(ctx, path))
}

// BeginLoad starts a load of path.
func (s *Shell) BeginLoad(path string) {
	s.session.Err = nil
	s.log.Debug().Str("path", path).Msg("loading file")
}

// Read fetches path from the host without touching the Session.
func (s *Shell) Read(ctx context.Context, path string) LoadResult {
	text, err := s.host.ReadFile(ctx, path)
	return LoadResult{Path: path, Text: text, Err: err}
}

// FinishLoad applies the outcome of Read. A failure keeps the previous
// document.
func (s *Shell) FinishLoad(r LoadResult) {
	if r.Err != nil {
		s.session.Err = &Error{Kind: ErrReadFailure, Err: r.Err}
		s.log.Warn().Err(r.Err).Str("path", r.Path).Msg("read failed")
		return
	}
	s.session.Document = &Document{
		Path: r.Path,
		Name: fileName(r.Path),
		Text: r.Text,
	}
	s.log.Info().Str("path", r.Path).Int("bytes", len(r.Text)).Msg("file loaded")
}

// OpenFile asks the user for a file and loads the first selection.
func (s *Shell) OpenFile(ctx context.Context) {
	s.BeginOpen()
	if path, ok := s.FinishOpen(s.ShowDialog(ctx)); ok {
		s.LoadFile(ctx, path)
	}
}

// BeginOpen starts an OpenFile interaction.
func (s *Shell) BeginOpen() {
	s.session.Err = nil
}

// ShowDialog runs the host's open dialog without touching the Session.
func (s *Shell) ShowDialog(ctx context.Context) DialogResult {
	paths, err := s.host.ShowOpenDialog(ctx, OpenDialogTitle, OpenFilters)
	return DialogResult{Paths: paths, Err: err}
}

// FinishOpen applies the dialog outcome and returns the path to load, if
// the user picked one.
func (s *Shell) FinishOpen(r DialogResult) (string, bool) {
	if r.Err != nil {
		s.session.Err = &Error{Kind: ErrDialogFailure, Err: r.Err}
		s.log.Warn().Err(r.Err).Msg("open dialog failed")
		return "", false
	}
	if len(r.Paths) == 0 {
		s.log.Debug().Msg("open dialog cancelled")
		return "", false
	}
	return r.Paths[0], true
}

// SetTheme switches the color scheme.
func (s *Shell) SetTheme(t Theme) error {
	if !t.Valid() {
		return ErrUnknownTheme
	}
	s.session.Theme = t
	return nil
}

// CycleTheme switches to the next theme in toolbar order.
func (s *Shell) CycleTheme() {
	s.session.Theme = s.session.Theme.Next()
}

// ZoomIn enlarges the document by one step, saturating at ZoomMax.
func (s *Shell) ZoomIn() {
	s.session.Zoom = clampZoom(s.session.Zoom + ZoomStep)
}

// ZoomOut shrinks the document by one step, saturating at ZoomMin.
func (s *Shell) ZoomOut() {
	s.session.Zoom = clampZoom(s.session.Zoom - ZoomStep)
}

// ShowAbout opens the about overlay.
func (s *Shell) ShowAbout() {
	s.session.AboutVisible = true
}

// DismissAbout closes the about overlay.
func (s *Shell) DismissAbout() {
	s.session.AboutVisible = false
}

// ClickAbout handles a click on the about overlay.
func (s *Shell) ClickAbout(target AboutTarget) {
	if !s.session.AboutVisible {
		return
	}
	switch target {
	case AboutBackground, AboutClose:
		s.DismissAbout()
	case AboutLink:
		s.OpenExternalLink(AboutURL)
	}
}

// OpenExternalLink opens url with the system's default handler.
func (s *Shell) OpenExternalLink(url string) {
	s.log.Info().Str("url", url).Msg("opening link")
	s.host.Open(url)
}
