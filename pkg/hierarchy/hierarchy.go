// Package hierarchy resolves the parent/child tree formed by nested module
// roots.
//
// The parent of a module is its nearest ancestor: among all modules whose
// path segments are a strict leading prefix of its own, the one with the
// most segments. Comparison is always segment-wise, so "a" encloses "a/v2"
// but is unrelated to "ab". The hierarchy is computed once for the whole
// module set and then only read.
package hierarchy

import (
	"sort"

	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// Hierarchy is the resolved module tree
type Hierarchy struct {
	nodes  []*types.ModuleNode
	byPath map[types.ModulePath]*types.ModuleNode
}

// Resolve computes the nearest ancestor and the direct children of every
// module. Duplicate paths collapse into one node.
func Resolve(paths []types.ModulePath) (*Hierarchy, error) {
	logger := logging.GetLogger("hierarchy")

	byPath := make(map[types.ModulePath]*types.ModuleNode, len(paths))
	ordered := make([]types.ModulePath, 0, len(paths))
	for _, raw := range paths {
		p := types.NewModulePath(string(raw))
		if _, ok := byPath[p]; ok {
			continue
		}
		byPath[p] = &types.ModuleNode{Path: p}
		ordered = append(ordered, p)
	}

	// Shallowest first, then lexicographic
	sort.Slice(ordered, func(i, j int) bool {
		di, dj := ordered[i].Depth(), ordered[j].Depth()
		if di != dj {
			return di < dj
		}
		return ordered[i] < ordered[j]
	})

	for i, p := range ordered {
		parent, ok, err := nearestAncestor(p, ordered[:i])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		node := byPath[p]
		node.Parent = byPath[parent]
		node.Parent.Children = append(node.Parent.Children, node)
		logger.Trace().
			Str("module", p.ID()).
			Str("parent", parent.ID()).
			Msg("Resolved parent")
	}

	h := &Hierarchy{
		nodes:  make([]*types.ModuleNode, 0, len(ordered)),
		byPath: byPath,
	}
	for _, p := range ordered {
		h.nodes = append(h.nodes, byPath[p])
	}
	sort.Slice(h.nodes, func(i, j int) bool {
		return h.nodes[i].Path < h.nodes[j].Path
	})
	for _, n := range h.nodes {
		sort.Slice(n.Children, func(i, j int) bool {
			return n.Children[i].Path < n.Children[j].Path
		})
	}

	logger.Debug().
		Int("modules", len(h.nodes)).
		Int("roots", len(h.Roots())).
		Msg("Resolved module hierarchy")
	return h, nil
}

// nearestAncestor scans the shallower paths for ancestors of p and returns
// the deepest one. The root path is a valid ancestor, so absence is reported
// through the bool.
func nearestAncestor(p types.ModulePath, shallower []types.ModulePath) (types.ModulePath, bool, error) {
	var (
		best      types.ModulePath
		bestDepth = -1
	)
	for _, q := range shallower {
		if q.Depth() >= p.Depth() || !q.IsAncestorOf(p) {
			continue
		}
		switch d := q.Depth(); {
		case d > bestDepth:
			best, bestDepth = q, d
		case d == bestDepth:
			return "", false, errors.New(errors.ErrAmbiguousHierarchy, "module has two nearest ancestors").
				WithDetail("module", p.ID()).
				WithDetail("candidates", []string{best.ID(), q.ID()})
		}
	}
	return best, bestDepth >= 0, nil
}

// Nodes returns every node in lexicographic path order
func (h *Hierarchy) Nodes() []*types.ModuleNode {
	return h.nodes
}

// Roots returns the nodes without a parent, in path order
func (h *Hierarchy) Roots() []*types.ModuleNode {
	var roots []*types.ModuleNode
	for _, n := range h.nodes {
		if n.IsTopLevel() {
			roots = append(roots, n)
		}
	}
	return roots
}

// Lookup returns the node for a path
func (h *Hierarchy) Lookup(p types.ModulePath) (*types.ModuleNode, bool) {
	n, ok := h.byPath[types.NewModulePath(string(p))]
	return n, ok
}

// Len returns the number of modules
func (h *Hierarchy) Len() int {
	return len(h.nodes)
}

// Paths returns every module path in lexicographic order
func (h *Hierarchy) Paths() []types.ModulePath {
	paths := make([]types.ModulePath, len(h.nodes))
	for i, n := range h.nodes {
		paths[i] = n.Path
	}
	return paths
}
