package core

import (
	"context"

	"github.com/lucaspopp0/go-monorepo-test/pkg/aggregate"
	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/evaluator"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// DetectOptions configures a full change-detection run
type DetectOptions struct {
	ScanOptions

	// Changes is the changeset handed to the evaluator
	Changes types.Changeset

	// Evaluator defaults to an in-process glob evaluator
	Evaluator evaluator.Evaluator

	// Strict makes results missing from the evaluator an error
	Strict bool
}

// DetectResult holds every intermediate value of a run
type DetectResult struct {
	Scan    *Scan
	Result  types.ChangeResult
	Changed []types.ModulePath
}

// IDs returns the changed module identifiers in output order
func (r *DetectResult) IDs() []string {
	return aggregate.IDs(r.Changed)
}

// DetectChanged runs the whole pipeline and returns the changed modules in
// lexicographic path order.
func DetectChanged(ctx context.Context, opts DetectOptions) (*DetectResult, error) {
	logger := logging.GetLogger("core.detect")
	defer logging.LogOperationStart(logger, "detect changed modules")()

	scan, err := ScanRepository(opts.ScanOptions)
	if err != nil {
		return nil, err
	}

	ev := opts.Evaluator
	if ev == nil {
		glob, err := evaluator.NewGlob(evaluator.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		ev = glob
	}

	result, err := ev.Evaluate(ctx, scan.Rules, opts.Changes)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrEvaluatorFailure, "file-change evaluator failed")
	}

	changed, err := aggregate.Aggregate(scan.Rules, result, aggregate.Options{Strict: opts.Strict})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("modules", len(scan.Modules)).
		Int("files", len(opts.Changes)).
		Strs("changed", aggregate.IDs(changed)).
		Msg("Detected changed modules")

	return &DetectResult{
		Scan:    scan,
		Result:  result,
		Changed: changed,
	}, nil
}

// AggregateResults checks an external evaluator result against freshly built
// rules for the repository and returns the changed modules.
func AggregateResults(opts ScanOptions, result types.ChangeResult, strict bool) ([]types.ModulePath, error) {
	scan, err := ScanRepository(opts)
	if err != nil {
		return nil, err
	}
	return aggregate.Aggregate(scan.Rules, result, aggregate.Options{Strict: strict})
}
