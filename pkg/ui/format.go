package ui

import (
	"os"
	"strings"

	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how module lists and trees are rendered
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output stream
	FormatAuto Format = iota
	// FormatTerminal renders styled output for interactive terminals
	FormatTerminal
	// FormatText renders one plain line per module
	FormatText
	// FormatJSON renders indented JSON
	FormatJSON
)

// FormatNames lists the canonical format names, indexed by Format
var FormatNames = []string{"auto", "term", "text", "json"}

var formatAliases = map[string]Format{
	"terminal": FormatTerminal,
	"plain":    FormatText,
	"":         FormatAuto,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(FormatNames) {
		return "unknown"
	}
	return FormatNames[f]
}

// ParseFormat accepts a canonical name from FormatNames or one of its
// aliases, case-insensitively
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range FormatNames {
		if n == name {
			return Format(i), nil
		}
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown output format %q", s).
		WithDetail("valid", FormatNames)
}

// DetectFormat picks terminal output for color-capable terminals and plain
// text otherwise. NO_COLOR forces plain text.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	fd := output.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
