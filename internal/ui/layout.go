package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/markread/internal/viewer"
)

// zone is a clickable horizontal span of a single row.
type zone struct {
	x0, x1 int
	action func(m *Model) tea.Cmd
}

func (z zone) contains(x int) bool {
	return x >= z.x0 && x < z.x1
}

type segment struct {
	text   string
	style  lipgloss.Style
	action func(m *Model) tea.Cmd
}

// toolbar lays out the top row and returns it with its clickable zones.
func toolbar(v viewer.View, st styleSet, width int) (string, []zone) {
	left := []segment{
		{text: " " + v.AppName + " ", style: st.title},
		{text: "[Open File]", style: st.button, action: (*Model).openFile},
	}

	var right []segment
	for _, opt := range v.Themes {
		theme := opt.Theme
		style := st.button
		if opt.Active {
			style = st.active
		}
		right = append(right,
			segment{text: "[" + opt.Label + "]", style: style, action: func(m *Model) tea.Cmd {
				_ = m.shell.SetTheme(theme)
				return nil
			}},
			segment{text: " ", style: st.bar},
		)
	}
	zoomOut, zoomIn := st.button, st.button
	if !v.Zoom.CanZoomOut {
		zoomOut = st.disabled
	}
	if !v.Zoom.CanZoomIn {
		zoomIn = st.disabled
	}
	right = append(right,
		segment{text: "│ ", style: st.bar},
		segment{text: "[-]", style: zoomOut, action: func(m *Model) tea.Cmd { m.shell.ZoomOut(); return nil }},
		segment{text: " " + padLeft(v.Zoom.Label, 4) + " ", style: st.bar},
		segment{text: "[+]", style: zoomIn, action: func(m *Model) tea.Cmd { m.shell.ZoomIn(); return nil }},
		segment{text: " │ ", style: st.bar},
		segment{text: "[?]", style: st.button, action: func(m *Model) tea.Cmd { m.shell.ShowAbout(); return nil }},
		segment{text: " ", style: st.bar},
	)

	leftWidth := segmentsWidth(left)
	rightWidth := segmentsWidth(right)
	if v.FileName != "" {
		room := width - leftWidth - rightWidth - 2
		if room > 0 {
			left = append(left, segment{text: " " + ansi.Truncate(v.FileName, room, "…"), style: st.fileName})
			leftWidth = segmentsWidth(left)
		}
	}
	gap := max(width-leftWidth-rightWidth, 1)

	var b strings.Builder
	var zones []zone
	x := 0
	emit := func(segs []segment) {
		for _, s := range segs {
			w := lipgloss.Width(s.text)
			b.WriteString(s.style.Render(s.text))
			if s.action != nil {
				zones = append(zones, zone{x0: x, x1: x + w, action: s.action})
			}
			x += w
		}
	}
	emit(left)
	emit([]segment{{text: strings.Repeat(" ", gap), style: st.bar}})
	emit(right)
	return b.String(), zones
}

func segmentsWidth(segs []segment) int {
	w := 0
	for _, s := range segs {
		w += lipgloss.Width(s.text)
	}
	return w
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

const emptyButton = "[ Open File ]"

var emptyLines = []string{
	"▤",
	"",
	"Open a Markdown file to start reading",
	"",
	emptyButton,
}

// emptyState renders the placeholder centered in a width×height area and
// returns the zone of its Open-File button relative to the area, along
// with the button's row.
func emptyState(st styleSet, width, height int) (string, zone, int) {
	block := st.empty.Render(strings.Join(emptyLines, "\n"))
	bw, bh := lipgloss.Width(block), lipgloss.Height(block)
	left := max(width-bw, 0) / 2
	top := max(height-bh, 0) / 2

	btnW := lipgloss.Width(emptyButton)
	btnX := left + (bw-btnW)/2
	btnRow := top + len(emptyLines) - 1

	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
	return placed, zone{x0: btnX, x1: btnX + btnW, action: (*Model).openFile}, btnRow
}

const aboutClose = "[ Close ]"

const aboutPrefix = "Built with ♥ by "

// aboutLayout is the rendered about card with the positions of its
// controls relative to the card's top-left corner.
type aboutLayout struct {
	card             string
	width, height    int
	linkRow          int
	linkX0, linkX1   int
	closeRow         int
	closeX0, closeX1 int
}

func layoutAbout(a *viewer.AboutView, st styleSet) aboutLayout {
	linkLine := aboutPrefix + st.link.Render(a.Author)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(a.Title),
		"",
		linkLine,
		"",
		aboutClose,
	}
	card := st.card.Render(strings.Join(lines, "\n"))

	contentW := 0
	for _, l := range lines {
		contentW = max(contentW, lipgloss.Width(l))
	}
	frameLeft := st.card.GetBorderLeftSize() + st.card.GetPaddingLeft()
	frameTop := st.card.GetBorderTopSize() + st.card.GetPaddingTop()

	linkStart := frameLeft + (contentW-lipgloss.Width(linkLine))/2 + lipgloss.Width(aboutPrefix)
	closeStart := frameLeft + (contentW-lipgloss.Width(aboutClose))/2

	return aboutLayout{
		card:     card,
		width:    lipgloss.Width(card),
		height:   lipgloss.Height(card),
		linkRow:  frameTop + 2,
		linkX0:   linkStart,
		linkX1:   linkStart + lipgloss.Width(a.Author),
		closeRow: frameTop + 4,
		closeX0:  closeStart,
		closeX1:  closeStart + lipgloss.Width(aboutClose),
	}
}

// target resolves a click at (x, y) on a screen of the given size with the
// card centered on it.
func (l aboutLayout) target(x, y, width, height int) viewer.AboutTarget {
	left := max(width-l.width, 0) / 2
	top := max(height-l.height, 0) / 2
	cx, cy := x-left, y-top
	switch {
	case cx < 0 || cy < 0 || cx >= l.width || cy >= l.height:
		return viewer.AboutBackground
	case cy == l.closeRow && cx >= l.closeX0 && cx < l.closeX1:
		return viewer.AboutClose
	case cy == l.linkRow && cx >= l.linkX0 && cx < l.linkX1:
		return viewer.AboutLink
	default:
		return viewer.AboutCard
	}
}
