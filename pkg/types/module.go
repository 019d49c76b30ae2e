package types

import (
	"path"
	"strings"
)

// RootID is the external identifier of the module at the repository root.
const RootID = "."

// ModulePath is a normalized, slash-separated, repository-relative directory
// path with no trailing slash. The repository root is the empty path.
type ModulePath string

// NewModulePath normalizes a raw relative path into a ModulePath.
// Backslashes become slashes, "./" and leading "/" are dropped and "." maps
// to the root path.
func NewModulePath(raw string) ModulePath {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return ""
	}

	p = path.Clean("/" + p)
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return ModulePath(p)
}

// String returns the raw path
func (p ModulePath) String() string {
	return string(p)
}

// ID returns the identifier used in filter maps and output.
func (p ModulePath) ID() string {
	if p.IsRoot() {
		return RootID
	}
	return string(p)
}

// IsRoot reports whether p is the repository root
func (p ModulePath) IsRoot() bool {
	return p == ""
}

// Segments splits the path on "/". The root has no segments.
func (p ModulePath) Segments() []string {
	if p.IsRoot() {
		return nil
	}
	return strings.Split(string(p), "/")
}

// Depth returns the number of path segments
func (p ModulePath) Depth() int {
	if p.IsRoot() {
		return 0
	}
	return strings.Count(string(p), "/") + 1
}

// IsAncestorOf reports whether p's segments are a strict leading prefix of
// other's segments. Comparison is segment-wise: "a" is not an ancestor of "ab".
func (p ModulePath) IsAncestorOf(other ModulePath) bool {
	mine := p.Segments()
	theirs := other.Segments()
	if len(mine) >= len(theirs) {
		return false
	}
	for i, seg := range mine {
		if theirs[i] != seg {
			return false
		}
	}
	return true
}

// SubtreeGlob returns the glob matching every path below p. Glob
// metacharacters in p, and a leading "!", are backslash-escaped so they
// match literally.
func (p ModulePath) SubtreeGlob() string {
	if p.IsRoot() {
		return "**"
	}
	return EscapeGlob(string(p)) + "/**"
}

// EscapeGlob escapes s so that a doublestar or picomatch pattern matches it
// literally.
func EscapeGlob(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if strings.ContainsRune(globMeta, r) || (i == 0 && r == '!') {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

const globMeta = `*?[]{}\`

// ModuleNode is one entry of the resolved module hierarchy
type ModuleNode struct {
	// Path is the identity of the module
	Path ModulePath

	// Parent is the nearest ancestor module, nil for hierarchy roots
	Parent *ModuleNode

	// Children holds the direct children sorted by path
	Children []*ModuleNode
}

// IsTopLevel reports whether no other module encloses this one
func (n *ModuleNode) IsTopLevel() bool {
	return n.Parent == nil
}

// ChildPaths returns the paths of the direct children in order
func (n *ModuleNode) ChildPaths() []ModulePath {
	paths := make([]ModulePath, len(n.Children))
	for i, child := range n.Children {
		paths[i] = child.Path
	}
	return paths
}
