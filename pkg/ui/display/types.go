// Package display holds the result types that renderers know how to draw.
package display

import (
	"github.com/lucaspopp0/go-monorepo-test/pkg/hierarchy"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// ModuleList is the flat view of a repository's modules
type ModuleList struct {
	Root    string   `json:"root"`
	Modules []Module `json:"modules"`
}

// Module is one module with its place in the hierarchy and its filter rule
type Module struct {
	ID       string   `json:"id"`
	Parent   string   `json:"parent,omitempty"`
	Children []string `json:"children"`
	Include  string   `json:"include"`
	Excludes []string `json:"excludes"`
}

// Tree is the nested view of a repository's modules
type Tree struct {
	Root  string     `json:"root"`
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is one module and its direct children
type TreeNode struct {
	ID       string     `json:"id"`
	Children []TreeNode `json:"children,omitempty"`
}

// NewModuleList flattens a hierarchy in path order
func NewModuleList(root string, h *hierarchy.Hierarchy, rules []types.FilterRule) *ModuleList {
	byID := make(map[string]types.FilterRule, len(rules))
	for _, r := range rules {
		byID[r.ID.ID()] = r
	}

	list := &ModuleList{Root: root, Modules: make([]Module, 0, h.Len())}
	for _, n := range h.Nodes() {
		m := Module{
			ID:       n.Path.ID(),
			Children: make([]string, 0, len(n.Children)),
			Excludes: []string{},
		}
		if n.Parent != nil {
			m.Parent = n.Parent.Path.ID()
		}
		for _, c := range n.Children {
			m.Children = append(m.Children, c.Path.ID())
		}
		if r, ok := byID[m.ID]; ok {
			m.Include = r.Include
			m.Excludes = append(m.Excludes, r.Excludes...)
		}
		list.Modules = append(list.Modules, m)
	}
	return list
}

// NewTree nests a hierarchy under its top-level modules
func NewTree(root string, h *hierarchy.Hierarchy) *Tree {
	t := &Tree{Root: root, Nodes: make([]TreeNode, 0)}
	for _, n := range h.Roots() {
		t.Nodes = append(t.Nodes, newTreeNode(n))
	}
	return t
}

func newTreeNode(n *types.ModuleNode) TreeNode {
	node := TreeNode{ID: n.Path.ID()}
	for _, c := range n.Children {
		node.Children = append(node.Children, newTreeNode(c))
	}
	return node
}
