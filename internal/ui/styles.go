package ui

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/markread/internal/viewer"
)

// palette is the chrome coloring of one theme.
type palette struct {
	barFg   lipgloss.Color
	barBg   lipgloss.Color
	accent  lipgloss.Color
	muted   lipgloss.Color
	alertFg lipgloss.Color
	alertBg lipgloss.Color
	cardBg  lipgloss.Color
}

var palettes = map[viewer.Theme]palette{
	viewer.ThemeLight: {
		barFg:   lipgloss.Color("#1f2328"),
		barBg:   lipgloss.Color("#eaeef2"),
		accent:  lipgloss.Color("#0969da"),
		muted:   lipgloss.Color("#656d76"),
		alertFg: lipgloss.Color("#82071e"),
		alertBg: lipgloss.Color("#ffebe9"),
		cardBg:  lipgloss.Color("#ffffff"),
	},
	viewer.ThemeDark: {
		barFg:   lipgloss.Color("#c0caf5"),
		barBg:   lipgloss.Color("#1f2335"),
		accent:  lipgloss.Color("#7aa2f7"),
		muted:   lipgloss.Color("#565f89"),
		alertFg: lipgloss.Color("#ff6b6b"),
		alertBg: lipgloss.Color("#2d202a"),
		cardBg:  lipgloss.Color("#1a1b26"),
	},
	viewer.ThemeSepia: {
		barFg:   lipgloss.Color("#5b4636"),
		barBg:   lipgloss.Color("#e8dcc0"),
		accent:  lipgloss.Color("#8b4513"),
		muted:   lipgloss.Color("#8a7560"),
		alertFg: lipgloss.Color("#7a1f12"),
		alertBg: lipgloss.Color("#f2d6c4"),
		cardBg:  lipgloss.Color("#f4ecd8"),
	},
}

// styleSet holds the lipgloss styles derived from a palette.
type styleSet struct {
	bar         lipgloss.Style
	title       lipgloss.Style
	button      lipgloss.Style
	active      lipgloss.Style
	disabled    lipgloss.Style
	fileName    lipgloss.Style
	alert       lipgloss.Style
	hint        lipgloss.Style
	uiErr       lipgloss.Style
	card        lipgloss.Style
	link        lipgloss.Style
	empty       lipgloss.Style
	treeLine    lipgloss.Style
	treeCurrent lipgloss.Style
	pickerBox   lipgloss.Style
}

func stylesFor(t viewer.Theme) styleSet {
	p, ok := palettes[t]
	if !ok {
		p = palettes[viewer.ThemeLight]
	}
	bar := lipgloss.NewStyle().Foreground(p.barFg).Background(p.barBg)
	return styleSet{
		bar:      bar,
		title:    bar.Bold(true).Foreground(p.accent),
		button:   bar,
		active:   bar.Reverse(true).Bold(true),
		disabled: bar.Foreground(p.muted).Faint(true),
		fileName: bar.Italic(true),
		alert:    lipgloss.NewStyle().Foreground(p.alertFg).Background(p.alertBg).Bold(true),
		hint:     lipgloss.NewStyle().Foreground(p.muted),
		uiErr:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")),
		card: lipgloss.NewStyle().
			Padding(1, 3).
			Align(lipgloss.Center).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.accent),
		link:     lipgloss.NewStyle().Foreground(p.accent).Underline(true),
		empty:    lipgloss.NewStyle().Foreground(p.muted).Align(lipgloss.Center),
		treeLine: lipgloss.NewStyle().Foreground(p.barFg),
		treeCurrent: lipgloss.NewStyle().
			Foreground(p.barBg).
			Background(p.accent).
			Bold(true),
		pickerBox: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.accent),
	}
}

// glamourStyle returns the terminal Markdown style of a theme.
func glamourStyle(t viewer.Theme) ansi.StyleConfig {
	switch t {
	case viewer.ThemeDark:
		return styles.TokyoNightStyleConfig
	case viewer.ThemeSepia:
		return sepiaStyleConfig()
	default:
		return styles.LightStyleConfig
	}
}

// sepiaStyleConfig is the light style in warm brown ink.
func sepiaStyleConfig() ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	cfg.Document.Color = stringPtr("#5b4636")
	cfg.Heading.Color = stringPtr("#704214")
	cfg.H1.Color = stringPtr("#f4ecd8")
	cfg.H1.BackgroundColor = stringPtr("#8b4513")
	cfg.Link.Color = stringPtr("#8b4513")
	cfg.LinkText.Color = stringPtr("#704214")
	cfg.Code.Color = stringPtr("#7a1f12")
	cfg.Code.BackgroundColor = stringPtr("#ebe0c5")
	cfg.BlockQuote.Color = stringPtr("#8a7560")
	return cfg
}

func stringPtr(s string) *string {
	return &s
}
