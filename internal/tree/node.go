// Package tree models a lazily loaded directory tree for the open dialog.
package tree

import (
	"sort"
	"strings"
)

// Loader retrieves child entries for a particular node path.
type Loader interface {
	List(path string) ([]*Node, error)
}

// Node represents a single entry in the file tree.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Open     bool
	Parent   *Node
	Children []*Node

	loader Loader
	loaded bool
}

// Line is a visible node together with its depth below the root.
type Line struct {
	Node  *Node
	Depth int
}

// NewRoot creates the root node for the tree.
func NewRoot(name string, loader Loader) *Node {
	return &Node{
		Name:   name,
		Path:   "",
		IsDir:  true,
		Open:   true,
		loader: loader,
	}
}

// EnsureLoaded lazily loads child entries for directory nodes.
func (n *Node) EnsureLoaded() error {
	if !n.IsDir || n.loaded || n.loader == nil {
		return nil
	}

	children, err := n.loader.List(n.Path)
	if err != nil {
		return err
	}

	n.Children = children
	for _, child := range n.Children {
		child.Parent = n
		child.loader = n.loader
	}
	n.sortChildren()
	n.loaded = true
	return nil
}

// Visible flattens the tree in display order, descending only into open
// directories. Directories that fail to load are shown without children.
func (n *Node) Visible() []Line {
	var lines []Line
	var walk func(*Node, int)
	walk = func(node *Node, depth int) {
		lines = append(lines, Line{Node: node, Depth: depth})
		if !node.IsDir || !node.Open {
			return
		}
		if err := node.EnsureLoaded(); err != nil {
			return
		}
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	walk(n, 0)
	return lines
}

// Label formats the node for display at depth.
func (n *Node) Label(depth int) string {
	if depth == 0 {
		return n.Name + "/"
	}
	indent := strings.Repeat("  ", depth-1)
	indicator := "  "
	if n.IsDir {
		if n.Open {
			indicator = "- "
		} else {
			indicator = "+ "
		}
	}
	label := indent + indicator + n.Name
	if n.IsDir {
		label += "/"
	}
	return label
}

func (n *Node) sortChildren() {
	sort.Slice(n.Children, func(i, j int) bool {
		ci, cj := n.Children[i], n.Children[j]
		switch {
		case ci.IsDir == cj.IsDir:
			return strings.ToLower(ci.Name) < strings.ToLower(cj.Name)
		case ci.IsDir:
			return true
		default:
			return false
		}
	})
}
