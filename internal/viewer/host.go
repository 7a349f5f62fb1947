package viewer

import (
	"context"
	"strings"
)

// Host is the desktop-shell runtime the viewer depends on.
type Host interface {
	// ReadFile returns the text content of the file at path.
	ReadFile(ctx context.Context, path string) (string, error)
	// ShowOpenDialog asks the user for files. An empty result means the
	// user cancelled.
	ShowOpenDialog(ctx context.Context, title string, filters []Filter) ([]string, error)
	// Open hands url to the system's default handler.
	Open(url string)
}

// Renderer converts Markdown text to HTML.
type Renderer interface {
	Render(source string) (string, error)
}

// Filter is a named group of file extensions offered by the open dialog.
// The extension "*" matches every file.
type Filter struct {
	Name       string
	Extensions []string
}

// Match reports whether the file name carries one of the filter's
// extensions, ignoring case.
func (f Filter) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range f.Extensions {
		if ext == "*" {
			return true
		}
		if strings.HasSuffix(lower, "."+strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// OpenDialogTitle is the title of the open-file dialog.
const OpenDialogTitle = "Open Markdown File"

// OpenFilters are the filter groups offered by OpenFile.
var OpenFilters = []Filter{
	{Name: "Markdown Files", Extensions: []string{"md", "markdown", "txt"}},
	{Name: "All Files", Extensions: []string{"*"}},
}

// LaunchPath returns the file passed by the OS file association, if the
// launch arguments carry one with a supported extension. args[0] is the
// binary path.
func LaunchPath(args []string) (string, bool) {
	if len(args) < 2 {
		return "", false
	}
	path := args[1]
	ext := strings.ToLower(path[strings.LastIndex(path, ".")+1:])
	switch ext {
	case "md", "markdown", "txt":
		return path, true
	default:
		return "", false
	}
}
