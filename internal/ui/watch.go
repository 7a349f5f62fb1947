package ui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// startWatching follows changes to the document at path. The directory is
// watched rather than the file so editors that replace files on save are
// noticed.
func (m *Model) startWatching(path string) tea.Cmd {
	if !m.watch || path == "" {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		m.err = err
		return nil
	}
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		return nil
	}

	dir := filepath.Dir(abs)
	if dir != m.watchDir {
		if m.watchDir != "" {
			_ = m.watcher.Remove(m.watchDir)
		}
		if err := m.watcher.Add(dir); err != nil {
			m.err = err
			return nil
		}
		m.watchDir = dir
	}

	m.err = nil
	first := m.watchedFile == ""
	m.watchedFile = abs
	m.watchedPath = path
	if !first {
		return nil
	}
	return m.waitForFileEvent()
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)

	go m.watchLoop(watcher, m.watchChan)
	return nil
}

func (m *Model) watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg) {
	defer close(out)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			out <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			out <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	ch := m.watchChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// handleFileEvent reloads the document when its file changed.
func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	next := m.waitForFileEvent()
	if m.watchedFile == "" || filepath.Clean(msg.path) != m.watchedFile {
		return next
	}
	m.log.Debug().Str("path", msg.path).Str("op", msg.op.String()).Msg("document changed")
	if msg.op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		// Editors that save by replacing the file emit a Create next.
		return next
	}
	return tea.Batch(m.loadFile(m.watchedPath), next)
}

// Close releases the file watcher.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
