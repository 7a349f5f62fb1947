package viewer

import "fmt"

// View is the presentation of a Session. It is derived from scratch after
// every handler.
type View struct {
	AppName  string
	FileName string
	Theme    Theme
	Themes   []ThemeOption
	Zoom     ZoomView

	// Alert is the failure message, shown whether or not a document is
	// loaded.
	Alert string
	// Empty is set when there is neither a document nor a failure.
	Empty    bool
	Document *DocumentView
	About    *AboutView
}

// ThemeOption is one theme button of the toolbar.
type ThemeOption struct {
	Theme  Theme
	Label  string
	Icon   string
	Active bool
}

// ZoomView describes the zoom controls.
type ZoomView struct {
	Percent    int
	Label      string
	CanZoomIn  bool
	CanZoomOut bool
}

// DocumentView is the rendered document container.
type DocumentView struct {
	Name   string
	Source string
	// HTML is the rendered markup, empty when rendering failed.
	HTML        string
	ZoomPercent int
	ThemeClass  string
}

// FontSize is the CSS font-size of the container.
func (d DocumentView) FontSize() string {
	return fmt.Sprintf("%d%%", d.ZoomPercent)
}

// AboutView is the content of the about overlay.
type AboutView struct {
	Title  string
	Author string
	URL    string
}

var themeIcons = map[Theme]string{
	ThemeLight: "☀",
	ThemeDark:  "☾",
	ThemeSepia: "✎",
}

// Derive computes the View of s. r renders the document text.
func Derive(s Session, r Renderer) View {
	v := View{
		AppName:  AppName,
		FileName: s.FileName(),
		Theme:    s.Theme,
		Zoom: ZoomView{
			Percent:    s.Zoom,
			Label:      fmt.Sprintf("%d%%", s.Zoom),
			CanZoomIn:  s.Zoom < ZoomMax,
			CanZoomOut: s.Zoom > ZoomMin,
		},
		Alert: s.ErrorMessage(),
	}
	for _, t := range Themes {
		v.Themes = append(v.Themes, ThemeOption{
			Theme:  t,
			Label:  string(t),
			Icon:   themeIcons[t],
			Active: t == s.Theme,
		})
	}

	switch {
	case s.Document != nil:
		v.Document = &DocumentView{
			Name:        s.Document.Name,
			Source:      s.Document.Text,
			HTML:        renderHTML(r, s.Document.Text),
			ZoomPercent: s.Zoom,
			ThemeClass:  s.Theme.Class(),
		}
	case s.Err == nil:
		v.Empty = true
	}

	if s.AboutVisible {
		v.About = &AboutView{
			Title:  AppName,
			Author: AboutAuthor,
			URL:    AboutURL,
		}
	}
	return v
}

// renderHTML returns the empty string when the renderer fails; viewers
// show Source instead.
func renderHTML(r Renderer, source string) string {
	if r == nil {
		return ""
	}
	out, err := r.Render(source)
	if err != nil {
		return ""
	}
	return out
}
