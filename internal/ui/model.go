package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/kyaoi/markread/internal/host"
	"github.com/kyaoi/markread/internal/page"
	"github.com/kyaoi/markread/internal/render"
	"github.com/kyaoi/markread/internal/viewer"
)

const (
	toolbarHeight   = 1
	footerHeight    = 1
	minContentWidth = 20
)

const hints = "o open · 1/2/3 theme · +/- zoom · b preview · ? about · q quit"

// Options configures a Model.
type Options struct {
	Shell   *viewer.Shell
	Dialogs <-chan *host.DialogRequest
	Log     zerolog.Logger
	// Context bounds the host calls started by the UI.
	Context context.Context
	Args    []string
	Watch   bool
	// PreviewPath is where the browser preview page is written.
	PreviewPath string
	// StartDir is where the open dialog starts when no document is
	// loaded. Defaults to the working directory.
	StartDir string
}

// Model implements the Bubble Tea program for the viewer window.
type Model struct {
	shell       *viewer.Shell
	dialogs     <-chan *host.DialogRequest
	log         zerolog.Logger
	ctx         context.Context
	args        []string
	previewPath string
	startDir    string

	contentVP   viewport.Model
	renderer    *glamour.TermRenderer
	rendererKey styleKey
	rendered    contentKey
	pendingKey  string
	ready       bool
	width       int
	height      int
	picker      *picker
	opening     bool
	err         error

	watch       bool
	watcher     *fsnotify.Watcher
	watchDir    string
	watchedFile string
	watchedPath string
	watchChan   chan tea.Msg
}

type styleKey struct {
	theme viewer.Theme
	wrap  int
}

type contentKey struct {
	path string
	text string
	styleKey
}

type loadedMsg viewer.LoadResult

type dialogDoneMsg viewer.DialogResult

type dialogRequestMsg struct {
	req *host.DialogRequest
}

type previewMsg struct {
	url string
	err error
}

// NewModel returns a Model driving opts.Shell.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	startDir := opts.StartDir
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		}
	}
	vp := viewport.New(0, 0)
	return &Model{
		shell:       opts.Shell,
		dialogs:     opts.Dialogs,
		log:         opts.Log,
		ctx:         ctx,
		args:        opts.Args,
		previewPath: opts.PreviewPath,
		startDir:    startDir,
		contentVP:   vp,
		watch:       opts.Watch,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForDialog()}
	if path, ok := viewer.LaunchPath(m.args); ok {
		cmds = append(cmds, m.loadFile(path))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncContent()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		if m.picker != nil {
			m.picker.resize(m.width, m.height)
		}
		return nil

	case loadedMsg:
		r := viewer.LoadResult(msg)
		m.shell.FinishLoad(r)
		if r.Err != nil {
			return nil
		}
		return m.startWatching(r.Path)

	case dialogDoneMsg:
		m.opening = false
		if path, ok := m.shell.FinishOpen(viewer.DialogResult(msg)); ok {
			return m.loadFile(path)
		}
		return nil

	case dialogRequestMsg:
		m.showPicker(msg.req)
		return m.waitForDialog()

	case previewMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Warn().Err(msg.err).Msg("preview failed")
			return nil
		}
		m.err = nil
		m.shell.OpenExternalLink(msg.url)
		return nil

	case fileEventMsg:
		return m.handleFileEvent(msg)

	case fileWatchErrMsg:
		m.err = msg.err
		m.log.Warn().Err(msg.err).Msg("watch failed")
		return m.waitForFileEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key != "g" {
		m.pendingKey = ""
	}

	if m.picker != nil {
		if m.picker.handleKey(key) {
			m.picker = nil
		}
		if key == "ctrl+c" {
			return tea.Quit
		}
		return nil
	}

	if m.shell.Session().AboutVisible {
		switch key {
		case "esc", "enter", "q", "?", "i":
			m.shell.DismissAbout()
		case "l":
			m.shell.ClickAbout(viewer.AboutLink)
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	}

	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "o":
		return m.openFile()
	case "1", "2", "3":
		_ = m.shell.SetTheme(viewer.Themes[key[0]-'1'])
		return nil
	case "t":
		m.shell.CycleTheme()
		return nil
	case "+", "=":
		m.shell.ZoomIn()
		return nil
	case "-":
		m.shell.ZoomOut()
		return nil
	case "?", "i":
		m.shell.ShowAbout()
		return nil
	case "b":
		return m.preview()
	}

	if m.handleContentKey(key) {
		return nil
	}
	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return cmd
}

func (m *Model) handleContentKey(key string) bool {
	switch key {
	case "j", "down":
		m.contentVP.ScrollDown(1)
	case "k", "up":
		m.contentVP.ScrollUp(1)
	case "ctrl+d":
		m.contentVP.HalfPageDown()
	case "ctrl+u":
		m.contentVP.HalfPageUp()
	case "h", "left":
		m.contentVP.ScrollLeft(max(2, m.contentVP.Width/6))
	case "l", "right":
		m.contentVP.ScrollRight(max(2, m.contentVP.Width/6))
	case "g":
		if m.pendingKey == "g" {
			m.contentVP.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case "G":
		m.contentVP.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.picker != nil {
		return nil
	}
	v := m.shell.View()
	st := stylesFor(v.Theme)

	if v.About != nil {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.shell.ClickAbout(layoutAbout(v.About, st).target(msg.X, msg.Y, m.width, m.height))
		}
		return nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.contentVP, cmd = m.contentVP.Update(msg)
		return cmd
	}

	if msg.Y == 0 {
		_, zones := toolbar(v, st, m.width)
		for _, z := range zones {
			if z.contains(msg.X) {
				return z.action(m)
			}
		}
		return nil
	}

	// The empty state never shares the screen with an alert.
	if v.Empty {
		_, btn, row := emptyState(st, m.width, m.bodyHeight(v, st))
		if msg.Y == toolbarHeight+row && btn.contains(msg.X) {
			return btn.action(m)
		}
	}
	return nil
}

// loadFile starts LoadFile for path; the read runs off the UI goroutine.
func (m *Model) loadFile(path string) tea.Cmd {
	m.shell.BeginLoad(path)
	shell, ctx := m.shell, m.ctx
	return func() tea.Msg {
		return loadedMsg(shell.Read(ctx, path))
	}
}

// openFile starts OpenFile. Only one dialog runs at a time.
func (m *Model) openFile() tea.Cmd {
	if m.opening {
		return nil
	}
	m.opening = true
	m.shell.BeginOpen()
	shell, ctx := m.shell, m.ctx
	return func() tea.Msg {
		return dialogDoneMsg(shell.ShowDialog(ctx))
	}
}

func (m *Model) waitForDialog() tea.Cmd {
	if m.dialogs == nil {
		return nil
	}
	ch := m.dialogs
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return dialogRequestMsg{req: req}
	}
}

func (m *Model) showPicker(req *host.DialogRequest) {
	dir := m.startDir
	if doc := m.shell.Session().Document; doc != nil {
		if abs, err := filepath.Abs(doc.Path); err == nil {
			dir = filepath.Dir(abs)
		}
	}
	p, err := newPicker(req, dir, stylesFor(m.shell.Session().Theme))
	if err != nil {
		req.Respond(nil, err)
		return
	}
	p.resize(m.width, m.height)
	m.picker = p
}

// preview writes the current view as an HTML page and opens it.
func (m *Model) preview() tea.Cmd {
	v := m.shell.View()
	path := m.previewPath
	return func() tea.Msg {
		url, err := page.WriteFile(path, v)
		return previewMsg{url: url, err: err}
	}
}

// syncContent re-renders the document pane when the document, theme, zoom
// or size changed.
func (m *Model) syncContent() {
	if !m.ready {
		return
	}
	s := m.shell.Session()
	v := m.shell.View()
	st := stylesFor(v.Theme)
	m.contentVP.Width = m.width
	m.contentVP.Height = m.bodyHeight(v, st)

	if s.Document == nil {
		if m.rendered != (contentKey{}) {
			m.contentVP.SetContent("")
			m.rendered = contentKey{}
		}
		return
	}

	key := contentKey{
		path:     s.Document.Path,
		text:     s.Document.Text,
		styleKey: styleKey{theme: s.Theme, wrap: wrapWidth(m.width, s.Zoom)},
	}
	if key == m.rendered {
		return
	}
	out, err := m.renderMarkdown(key)
	if err != nil {
		m.err = err
		m.log.Warn().Err(err).Msg("terminal render failed")
		out = s.Document.Text
	} else {
		m.err = nil
	}
	newDoc := key.path != m.rendered.path
	m.contentVP.SetContent(out)
	if newDoc {
		m.contentVP.GotoTop()
	}
	m.rendered = key
}

func (m *Model) renderMarkdown(key contentKey) (string, error) {
	if m.renderer == nil || m.rendererKey != key.styleKey {
		r, err := newRenderer(key.styleKey)
		if err != nil {
			return "", err
		}
		m.renderer = r
		m.rendererKey = key.styleKey
	}
	return m.renderer.Render(render.StripFrontMatter(key.text))
}

func newRenderer(key styleKey) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(glamourStyle(key.theme)),
		glamour.WithWordWrap(key.wrap),
	)
}

// wrapWidth maps the zoom level to a wrap column: zooming in narrows the
// text, zooming out widens it past the screen.
func wrapWidth(width, zoom int) int {
	return max(width*viewer.ZoomDefault/zoom, minContentWidth)
}

func (m *Model) alertLine(v viewer.View, st styleSet) string {
	if v.Alert == "" {
		return ""
	}
	return st.alert.Width(m.width).Render("⚠ " + v.Alert)
}

func (m *Model) bodyHeight(v viewer.View, st styleSet) int {
	h := m.height - toolbarHeight - footerHeight
	if v.Alert != "" {
		h -= lipgloss.Height(m.alertLine(v, st))
	}
	return max(h, 0)
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	v := m.shell.View()
	st := stylesFor(v.Theme)

	if m.picker != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.view())
	}
	if v.About != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, layoutAbout(v.About, st).card)
	}

	bar, _ := toolbar(v, st, m.width)
	rows := []string{bar}
	if v.Alert != "" {
		rows = append(rows, m.alertLine(v, st))
	}

	bodyHeight := m.bodyHeight(v, st)
	switch {
	case v.Empty:
		body, _, _ := emptyState(st, m.width, bodyHeight)
		rows = append(rows, body)
	case v.Document != nil:
		rows = append(rows, m.contentVP.View())
	default:
		rows = append(rows, strings.Repeat("\n", max(bodyHeight-1, 0)))
	}

	footer := st.hint.Render(hints)
	if m.err != nil {
		footer = st.uiErr.Render(m.err.Error())
	}
	rows = append(rows, footer)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
