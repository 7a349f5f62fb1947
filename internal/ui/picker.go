package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/markread/internal/host"
	"github.com/kyaoi/markread/internal/tree"
	"github.com/kyaoi/markread/internal/viewer"
)

const (
	minPickerWidth  = 30
	maxPickerWidth  = 72
	pickerChrome    = 6
	minPickerHeight = 3
)

// picker is the open-file dialog drawn over the viewer. It browses a
// directory tree filtered by the active filter group.
type picker struct {
	req       *host.DialogRequest
	filter    int
	dir       string
	root      *tree.Node
	lines     []tree.Line
	selection int
	pending   string
	vp        viewport.Model
	st        styleSet
	err       error
}

// newPicker opens a dialog rooted at dir. It fails when dir cannot be
// listed.
func newPicker(req *host.DialogRequest, dir string, st styleSet) (*picker, error) {
	p := &picker{
		req: req,
		vp:  viewport.New(0, 0),
		st:  st,
	}
	p.vp.MouseWheelEnabled = false
	if len(req.Filters) == 0 {
		req.Filters = []viewer.Filter{{Name: "All Files", Extensions: []string{"*"}}}
	}
	if err := p.setRoot(dir); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *picker) activeFilter() viewer.Filter {
	return p.req.Filters[p.filter]
}

// setRoot lists dir with the active filter and makes it the tree root.
func (p *picker) setRoot(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	loader := tree.NewFSLoader(abs, p.activeFilter().Match)
	root := tree.NewRoot(filepath.Base(abs), loader)
	if err := root.EnsureLoaded(); err != nil {
		return err
	}
	p.dir = abs
	p.root = root
	p.selection = 0
	p.refresh("")
	return nil
}

// refresh rebuilds the visible lines, selecting path when it is shown.
func (p *picker) refresh(path string) {
	p.lines = p.root.Visible()
	if path != "" {
		for i, line := range p.lines {
			if line.Node.Path == path {
				p.selection = i
				break
			}
		}
	}
	p.selection = clamp(p.selection, 0, max(len(p.lines)-1, 0))
	p.updateContent()
}

func (p *picker) current() *tree.Node {
	if p.selection < 0 || p.selection >= len(p.lines) {
		return nil
	}
	return p.lines[p.selection].Node
}

func (p *picker) move(delta int) {
	if len(p.lines) == 0 {
		return
	}
	p.selection = clamp(p.selection+delta, 0, len(p.lines)-1)
	p.updateContent()
}

// handleKey processes a key and reports whether the dialog is finished.
func (p *picker) handleKey(key string) bool {
	if key != "g" {
		p.pending = ""
	}
	switch key {
	case "esc", "q", "ctrl+c":
		p.req.Respond(nil, nil)
		return true
	case "j", "down":
		p.move(1)
	case "k", "up":
		p.move(-1)
	case "ctrl+d", "pgdown":
		p.move(max(1, p.vp.Height/2))
	case "ctrl+u", "pgup":
		p.move(-max(1, p.vp.Height/2))
	case "g":
		if p.pending == "g" {
			p.selection = 0
			p.pending = ""
			p.updateContent()
		} else {
			p.pending = "g"
		}
	case "G":
		p.move(len(p.lines))
	case "l", "right", "enter":
		return p.openOrDescend()
	case "h", "left":
		p.closeOrAscend()
	case "backspace":
		p.err = p.setRoot(filepath.Dir(p.dir))
	case "tab":
		p.cycleFilter()
	}
	return false
}

func (p *picker) openOrDescend() bool {
	entry := p.current()
	if entry == nil {
		return false
	}
	if !entry.IsDir {
		p.req.Respond([]string{filepath.Join(p.dir, filepath.FromSlash(entry.Path))}, nil)
		return true
	}
	if entry.Path == "" {
		return false
	}
	if !entry.Open {
		entry.Open = true
		if err := entry.EnsureLoaded(); err != nil {
			entry.Open = false
			p.err = err
			return false
		}
		p.refresh(entry.Path)
		return false
	}
	if len(entry.Children) > 0 {
		p.move(1)
	}
	return false
}

func (p *picker) closeOrAscend() {
	entry := p.current()
	if entry == nil {
		return
	}
	if entry.IsDir && entry.Open && entry.Path != "" {
		entry.Open = false
		p.refresh(entry.Path)
		return
	}
	if entry.Parent != nil {
		if entry.Parent.Path == "" {
			p.selection = 0
		}
		p.refresh(entry.Parent.Path)
	}
}

func (p *picker) cycleFilter() {
	prev := p.filter
	p.filter = (p.filter + 1) % len(p.req.Filters)
	if err := p.setRoot(p.dir); err != nil {
		p.filter = prev
		p.err = err
		return
	}
	p.err = nil
}

// updateContent redraws the tree lines with the current selection.
func (p *picker) updateContent() {
	var b strings.Builder
	for i, line := range p.lines {
		text := line.Node.Label(line.Depth)
		if i == p.selection {
			b.WriteString(p.st.treeCurrent.Render(text))
		} else {
			b.WriteString(p.st.treeLine.Render(text))
		}
		if i < len(p.lines)-1 {
			b.WriteByte('\n')
		}
	}
	p.vp.SetContent(b.String())
	p.ensureSelectionVisible()
}

func (p *picker) ensureSelectionVisible() {
	if len(p.lines) == 0 || p.vp.Height == 0 {
		return
	}
	if p.selection < p.vp.YOffset {
		p.vp.SetYOffset(p.selection)
		return
	}
	bottom := p.vp.YOffset + p.vp.Height - 1
	if p.selection > bottom {
		p.vp.SetYOffset(p.selection - p.vp.Height + 1)
	}
}

func (p *picker) resize(width, height int) {
	p.vp.Width = clamp(width-8, minPickerWidth, maxPickerWidth)
	p.vp.Height = max(height-pickerChrome-4, minPickerHeight)
	p.updateContent()
}

func (p *picker) view() string {
	st := p.st
	var tabs []string
	for i, f := range p.req.Filters {
		label := fmt.Sprintf(" %s (%s) ", f.Name, strings.Join(f.Extensions, ", "))
		if i == p.filter {
			tabs = append(tabs, st.active.Render(label))
		} else {
			tabs = append(tabs, st.button.Render(label))
		}
	}

	status := st.hint.Render("enter open · h/l fold · backspace parent · tab filter · esc cancel")
	if p.err != nil {
		status = st.uiErr.Render(p.err.Error())
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(p.req.Title),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		st.hint.Render(truncateLeft(p.dir, p.vp.Width)),
		p.vp.View(),
		status,
	)
	return st.pickerBox.Render(body)
}

// truncateLeft keeps the end of s, which is the informative part of a
// path.
func truncateLeft(s string, width int) string {
	runes := []rune(s)
	if width <= 1 || len(runes) <= width {
		return s
	}
	return "…" + string(runes[len(runes)-width+1:])
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
