package tree

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var errNotDir = errors.New("path is not a directory")

// maxScanDepth bounds how far below a listed directory HasMatch looks.
// Directories nested deeper are assumed to hold matches.
const maxScanDepth = 3

// FSLoader loads tree nodes by reading the filesystem under the given root.
// Only files accepted by the match function are listed, and directories
// are listed only when their subtree holds such a file.
type FSLoader struct {
	root  string
	match func(name string) bool
	cache map[string]bool
}

// NewFSLoader creates a loader that reads from the provided root directory.
func NewFSLoader(root string, match func(name string) bool) *FSLoader {
	return &FSLoader{
		root:  root,
		match: match,
		cache: make(map[string]bool),
	}
}

// Abs converts a path relative to the loader root into a filesystem path.
func (l *FSLoader) Abs(relPath string) string {
	if relPath == "" {
		return l.root
	}
	return filepath.Join(l.root, filepath.FromSlash(relPath))
}

// List returns immediate child entries for the provided relative path.
func (l *FSLoader) List(relPath string) ([]*Node, error) {
	dir := l.Abs(relPath)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errNotDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var nodes []*Node
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			childPath := join(relPath, name)
			has, err := l.HasMatch(childPath)
			if err != nil || !has {
				continue
			}
			nodes = append(nodes, &Node{
				Name:  name,
				Path:  childPath,
				IsDir: true,
			})
			continue
		}
		if !l.match(name) {
			continue
		}
		nodes = append(nodes, &Node{
			Name:  name,
			Path:  join(relPath, name),
			IsDir: false,
		})
	}
	return nodes, nil
}

// HasMatch reports whether the path (relative to the loader root) contains
// at least one matching file within its subtree, looking at most
// maxScanDepth levels down.
func (l *FSLoader) HasMatch(relPath string) (bool, error) {
	has, _, err := l.hasMatch(relPath, maxScanDepth)
	return has, err
}

// hasMatch also reports whether the answer is exact, that is, reached
// without hitting the depth bound. Only exact answers are cached.
func (l *FSLoader) hasMatch(relPath string, depth int) (has, exact bool, err error) {
	if cached, ok := l.cache[relPath]; ok {
		return cached, true, nil
	}
	if depth == 0 {
		return true, false, nil
	}

	entries, err := os.ReadDir(l.Abs(relPath))
	if err != nil {
		return false, false, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if shouldSkipDir(name) {
				continue
			}
			has, exact, err := l.hasMatch(join(relPath, name), depth-1)
			if err != nil || !has {
				continue
			}
			if exact {
				l.cache[relPath] = true
			}
			return true, exact, nil
		}
		if l.match(name) {
			l.cache[relPath] = true
			return true, true, nil
		}
	}

	l.cache[relPath] = false
	return false, true, nil
}

func join(base, part string) string {
	if base == "" {
		return part
	}
	return base + "/" + part
}

func shouldSkipDir(name string) bool {
	switch strings.ToLower(name) {
	case ".git", "node_modules", ".hg", ".svn", ".idea", ".vscode":
		return true
	default:
		return false
	}
}
