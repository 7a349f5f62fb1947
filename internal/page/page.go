// Package page renders a derived view as a standalone HTML document for
// the browser preview.
package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyaoi/markread/internal/render"
	"github.com/kyaoi/markread/internal/viewer"
)

//go:embed page.html.tmpl
var pageTemplate string

//go:embed styles.css
var stylesheet string

var tmpl = template.Must(template.New("page").Parse(pageTemplate))

// highlightStyles maps themes to chroma styles for code blocks.
var highlightStyles = map[viewer.Theme]string{
	viewer.ThemeLight: "github",
	viewer.ThemeDark:  "github-dark",
	viewer.ThemeSepia: "solarized-light",
}

type pageData struct {
	View         viewer.View
	Title        string
	ThemeClass   string
	Styles       template.CSS
	Highlight    template.CSS
	DocumentHTML template.HTML
}

// Render returns the HTML document for v.
func Render(v viewer.View) ([]byte, error) {
	highlight, err := render.HighlightCSS(highlightStyles[v.Theme])
	if err != nil {
		return nil, err
	}

	data := pageData{
		View:       v,
		Title:      v.AppName,
		ThemeClass: v.Theme.Class(),
		Styles:     template.CSS(stylesheet),
		Highlight:  template.CSS(highlight),
	}
	if v.FileName != "" {
		data.Title = v.FileName + " - " + v.AppName
	}
	if v.Document != nil {
		// The renderer sanitizes its output.
		data.DocumentHTML = template.HTML(v.Document.HTML)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders v to path and returns its file URL.
func WriteFile(path string, v viewer.View) (string, error) {
	out, err := Render(v)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String(), nil
}
