// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/lucaspopp0/go-monorepo-test/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.ModuleList:
		for _, m := range v.Modules {
			if _, err := fmt.Fprintln(r.output, m.ID); err != nil {
				return err
			}
		}
		return nil
	case *display.Tree:
		_, err := fmt.Fprintln(r.output, BuildTree(v).String())
		return err
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// BuildTree converts a display tree into an unstyled lipgloss tree rooted at
// the repository root
func BuildTree(t *display.Tree) *tree.Tree {
	root := tree.Root(t.Root)
	for _, n := range t.Nodes {
		root.Child(buildNode(n))
	}
	return root
}

func buildNode(n display.TreeNode) any {
	if len(n.Children) == 0 {
		return n.ID
	}
	node := tree.Root(n.ID)
	for _, c := range n.Children {
		node.Child(buildNode(c))
	}
	return node
}
