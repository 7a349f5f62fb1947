package viewer

import (
	"errors"
	"fmt"
	"strings"
)

// Theme is one of the color schemes the viewer can display.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeSepia Theme = "sepia"
)

// Themes lists every theme in toolbar order.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeSepia}

// ErrUnknownTheme is returned when a theme name is not one of Themes.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme converts a case-insensitive name into a Theme.
func ParseTheme(name string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(name)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Valid reports whether t is one of Themes.
func (t Theme) Valid() bool {
	for _, known := range Themes {
		if t == known {
			return true
		}
	}
	return false
}

// Next returns the theme following t in toolbar order, wrapping around.
func (t Theme) Next() Theme {
	for i, known := range Themes {
		if t == known {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeLight
}

// Class is the styling class of the document container for this theme.
func (t Theme) Class() string {
	return "theme-" + string(t)
}

// Zoom bounds, in percent.
const (
	ZoomMin     = 50
	ZoomMax     = 200
	ZoomStep    = 10
	ZoomDefault = 100
)

// Document is a loaded file.
type Document struct {
	Path string
	Name string
	Text string
}

// Session is the whole mutable state of the viewer window.
type Session struct {
	Document     *Document
	Err          error
	Theme        Theme
	Zoom         int
	AboutVisible bool
}

// NewSession returns a Session with the startup defaults.
func NewSession() Session {
	return Session{
		Theme: ThemeLight,
		Zoom:  ZoomDefault,
	}
}

// FileName returns the display name of the loaded document, or "".
func (s Session) FileName() string {
	if s.Document == nil {
		return ""
	}
	return s.Document.Name
}

// ErrorMessage returns the text of the last failure, or "".
func (s Session) ErrorMessage() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

func clampZoom(z int) int {
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}

// fileName returns the last segment of path, accepting both / and \ as
// separators.
func fileName(path string) string {
	name := path[strings.LastIndexAny(path, `/\`)+1:]
	if name == "" {
		return path
	}
	return name
}
