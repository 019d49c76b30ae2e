// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/lucaspopp0/go-monorepo-test/pkg/ui/display"
	"github.com/lucaspopp0/go-monorepo-test/pkg/ui/text"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer

	root   lipgloss.Style
	module lipgloss.Style
	muted  lipgloss.Style
	errorS lipgloss.Style
}

// New creates a new terminal renderer whose colors follow the capabilities
// of w
func New(w io.Writer) (*Renderer, error) {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		output: w,
		root:   lg.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		module: lg.NewStyle().Foreground(lipgloss.Color("10")),
		muted:  lg.NewStyle().Foreground(lipgloss.Color("8")),
		errorS: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}, nil
}

// RenderResult renders any result type with terminal styling
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.ModuleList:
		for _, m := range v.Modules {
			line := r.module.Render(m.ID)
			if m.Parent != "" {
				line += " " + r.muted.Render("(in "+m.Parent+")")
			}
			if _, err := fmt.Fprintln(r.output, line); err != nil {
				return err
			}
		}
		return nil
	case *display.Tree:
		t := text.BuildTree(v).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(r.muted).
			RootStyle(r.root).
			ItemStyle(r.module)
		_, err := fmt.Fprintln(r.output, t.String())
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, r.errorS.Render("Error:"), err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
