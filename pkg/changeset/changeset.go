// Package changeset parses lists of changed files into a normalized
// types.Changeset.
package changeset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"path"
	"strings"

	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// Parse reads changed file paths, either one per line or as a JSON array of
// strings. Blank lines and lines starting with "#" are ignored.
func Parse(r io.Reader) (types.Changeset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read changed files")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var paths []string
		if err := json.Unmarshal(trimmed, &paths); err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "changed files are not a JSON array of strings")
		}
		return FromPaths(paths), nil
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to scan changed files")
	}
	return FromPaths(paths), nil
}

// FromPaths normalizes paths, drops empties and duplicates and keeps the
// order of first appearance.
func FromPaths(paths []string) types.Changeset {
	logger := logging.GetLogger("changeset")

	seen := make(map[string]struct{}, len(paths))
	changes := make(types.Changeset, 0, len(paths))
	for _, raw := range paths {
		p, ok := Normalize(raw)
		if !ok {
			logger.Trace().Str("path", raw).Msg("Ignoring empty path")
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		changes = append(changes, p)
	}

	logger.Debug().Int("files", len(changes)).Msg("Parsed changeset")
	return changes
}

// Normalize turns a raw path into a clean, slash-separated,
// repository-relative path. It reports false for paths that name nothing.
func Normalize(raw string) (string, bool) {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", false
	}
	p = path.Clean(p)
	if p == "." {
		return "", false
	}
	return p, true
}
