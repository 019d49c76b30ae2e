// Package aggregate turns per-rule evaluator results into the ordered list of
// changed modules.
package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// Options controls how incomplete results are treated
type Options struct {
	// Strict turns a missing rule id into an EvaluatorMismatch error instead
	// of treating the module as unchanged
	Strict bool
}

// Aggregate returns the modules whose result is true, in rule order.
// Ids in result that no rule emitted are always an error.
func Aggregate(rules []types.FilterRule, result types.ChangeResult, opts Options) ([]types.ModulePath, error) {
	logger := logging.GetLogger("aggregate")

	known := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		known[r.ID.ID()] = struct{}{}
	}

	var extra []string
	for id := range result {
		if _, ok := known[id]; !ok {
			extra = append(extra, id)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, errors.Newf(errors.ErrEvaluatorMismatch, "evaluator reported %d unknown rule id(s)", len(extra)).
			WithDetail("ids", extra)
	}

	changed := make([]types.ModulePath, 0)
	var missing []string
	for _, r := range rules {
		id := r.ID.ID()
		value, ok := result[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if value {
			changed = append(changed, r.ID)
		}
	}

	if len(missing) > 0 {
		if opts.Strict {
			return nil, errors.Newf(errors.ErrEvaluatorMismatch, "evaluator result is missing %d rule id(s)", len(missing)).
				WithDetail("ids", missing)
		}
		logger.Warn().
			Strs("ids", missing).
			Msg("Evaluator result is missing rules, treating them as unchanged")
	}

	logger.Debug().
		Int("rules", len(rules)).
		Int("changed", len(changed)).
		Msg("Aggregated results")
	return changed, nil
}

// IDs returns the external identifiers of paths
func IDs(paths []types.ModulePath) []string {
	ids := make([]string, len(paths))
	for i, p := range paths {
		ids[i] = p.ID()
	}
	return ids
}

// Encode writes the changed modules as a compact JSON array followed by a
// newline. An empty list is written as [].
func Encode(w io.Writer, changed []types.ModulePath) error {
	data, err := json.Marshal(IDs(changed))
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode changed modules")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write changed modules: %w", err)
	}
	return nil
}

// ParseResults reads an evaluator result object mapping rule ids to
// booleans. The strings "true" and "false" are accepted as values.
func ParseResults(r io.Reader) (types.ChangeResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read evaluator results")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "evaluator results are not a JSON object")
	}

	result := make(types.ChangeResult, len(raw))
	for id, value := range raw {
		b, err := parseBool(value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid result for rule %q", id).
				WithDetail("value", string(value))
		}
		result[id] = b
	}
	return result, nil
}

func parseBool(value json.RawMessage) (bool, error) {
	if string(bytes.TrimSpace(value)) == "null" {
		return false, fmt.Errorf("expected a boolean, got null")
	}

	var b bool
	if err := json.Unmarshal(value, &b); err == nil {
		return b, nil
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return false, fmt.Errorf("expected a boolean")
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("expected \"true\" or \"false\", got %s", strconv.Quote(s))
}
