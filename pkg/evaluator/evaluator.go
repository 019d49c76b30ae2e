// Package evaluator decides which filter rules a changeset touches.
//
// Evaluator is the boundary to the file-change evaluator. Glob is the
// in-process implementation: it applies a rule's patterns in order and lets
// the last matching pattern decide. For rules produced by pkg/filters that is
// the same as dorny/paths-filter with `predicate-quantifier: 'every'`, not
// with the action's default of 'some'.
package evaluator

import (
	"context"

	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// Evaluator reports, for every rule id, whether the changeset touched the rule
type Evaluator interface {
	Evaluate(ctx context.Context, rules []types.FilterRule, changes types.Changeset) (types.ChangeResult, error)
}

// Func adapts a function to the Evaluator interface
type Func func(ctx context.Context, rules []types.FilterRule, changes types.Changeset) (types.ChangeResult, error)

// Evaluate calls f
func (f Func) Evaluate(ctx context.Context, rules []types.FilterRule, changes types.Changeset) (types.ChangeResult, error) {
	return f(ctx, rules, changes)
}

// Static returns a fixed result, such as one read back from an external
// evaluator's output file.
type Static types.ChangeResult

// Evaluate returns a copy of the static result
func (s Static) Evaluate(ctx context.Context, _ []types.FilterRule, _ types.Changeset) (types.ChangeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(types.ChangeResult, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}
