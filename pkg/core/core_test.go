// pkg/core/core_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS
// PURPOSE: Test the discovery-to-aggregation pipeline end to end

package core

import (
	"bytes"
	"context"
	"testing"

	"github.com/lucaspopp0/go-monorepo-test/pkg/aggregate"
	"github.com/lucaspopp0/go-monorepo-test/pkg/config"
	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/evaluator"
	"github.com/lucaspopp0/go-monorepo-test/pkg/testutil"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, modules ...string) (*testutil.TestEnvironment, ScanOptions) {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules(modules...)
	return env, ScanOptions{Root: env.Root, Manifest: "go.mod", FS: env.FS}
}

func detect(t *testing.T, opts ScanOptions, files ...string) []string {
	t.Helper()
	res, err := DetectChanged(context.Background(), DetectOptions{
		ScanOptions: opts,
		Changes:     types.Changeset(files),
	})
	require.NoError(t, err)
	return res.IDs()
}

func TestDetectChanged(t *testing.T) {
	_, opts := newRepo(t, "a", "a/v2", "b")

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{"parent_file", []string{"a/x.go"}, []string{"a"}},
		{"nested_file", []string{"a/v2/x.go"}, []string{"a/v2"}},
		{"both_levels", []string{"a/v2/x.go", "a/go.mod"}, []string{"a", "a/v2"}},
		{"sibling", []string{"b/internal/y.go"}, []string{"b"}},
		{"untracked", []string{"README.md", "docs/a/x.go"}, []string{}},
		{"no_changes", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detect(t, opts, tt.files...))
		})
	}
}

func TestDetectChanged_GlobMetacharactersInModulePaths(t *testing.T) {
	_, opts := newRepo(t, "apps/[id]", "svc{x}", "lib", "a", "a/[b")

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{"brackets_and_braces", []string{"apps/[id]/main.go", "svc{x}/a.go"}, []string{"apps/[id]", "svc{x}"}},
		{"unterminated_bracket_child", []string{"a/[b/x.go"}, []string{"a/[b"}},
		{"parent_of_bracket_child", []string{"a/x.go"}, []string{"a"}},
		{"lookalike_path", []string{"apps/i/main.go"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detect(t, opts, tt.files...))
		})
	}
}

func TestDetectChanged_RootModule(t *testing.T) {
	_, opts := newRepo(t, ".", "a", "a/v2")

	assert.Equal(t, []string{"."}, detect(t, opts, "README.md"))
	assert.Equal(t, []string{"a"}, detect(t, opts, "a/x.go"))
	assert.Equal(t, []string{".", "a/v2"}, detect(t, opts, "a/v2/x.go", "main.go"))
}

func TestDetectChanged_Idempotent(t *testing.T) {
	_, opts := newRepo(t, "svc/api", "svc/api/v2", "lib", "tools")
	files := []string{"svc/api/v2/h.go", "lib/x.go", "svc/api/main.go"}

	encode := func() string {
		res, err := DetectChanged(context.Background(), DetectOptions{ScanOptions: opts, Changes: files})
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, aggregate.Encode(&buf, res.Changed))
		return buf.String()
	}

	first := encode()
	assert.Equal(t, `["lib","svc/api","svc/api/v2"]`+"\n", first)
	assert.Equal(t, first, encode())
}

func TestDetectChanged_EmptyRepository(t *testing.T) {
	_, opts := newRepo(t)
	assert.Equal(t, []string{}, detect(t, opts, "a/x.go"))
}

func TestDetectChanged_MissingRoot(t *testing.T) {
	env, opts := newRepo(t)
	opts.Root = env.Path("missing")

	res, err := DetectChanged(context.Background(), DetectOptions{ScanOptions: opts})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDiscoveryFailure))
}

func TestDetectChanged_CustomEvaluator(t *testing.T) {
	_, opts := newRepo(t, "a", "b")

	t.Run("missing_entry_fails_closed", func(t *testing.T) {
		res, err := DetectChanged(context.Background(), DetectOptions{
			ScanOptions: opts,
			Evaluator:   evaluator.Static{"b": true},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, res.IDs())
	})

	t.Run("missing_entry_strict", func(t *testing.T) {
		_, err := DetectChanged(context.Background(), DetectOptions{
			ScanOptions: opts,
			Evaluator:   evaluator.Static{"b": true},
			Strict:      true,
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEvaluatorMismatch))
	})

	t.Run("extra_entry", func(t *testing.T) {
		_, err := DetectChanged(context.Background(), DetectOptions{
			ScanOptions: opts,
			Evaluator:   evaluator.Static{"a": true, "b": false, "c": true},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEvaluatorMismatch))
	})

	t.Run("evaluator_error", func(t *testing.T) {
		failing := evaluator.Func(func(context.Context, []types.FilterRule, types.Changeset) (types.ChangeResult, error) {
			return nil, errors.New(errors.ErrInternal, "boom")
		})
		_, err := DetectChanged(context.Background(), DetectOptions{ScanOptions: opts, Evaluator: failing})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEvaluatorFailure))
	})
}

func TestBuildFilters(t *testing.T) {
	_, opts := newRepo(t, "b", "a", "a/v2")

	rules, err := BuildFilters(opts)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a/**", "!a/v2/**"},
		{"a/v2/**"},
		{"b/**"},
	}, [][]string{rules[0].Patterns(), rules[1].Patterns(), rules[2].Patterns()})
}

func TestScanRepository(t *testing.T) {
	_, opts := newRepo(t, "b", "a", "a/v2")

	scan, err := ScanRepository(opts)
	require.NoError(t, err)
	assert.Equal(t, []types.ModulePath{"a", "a/v2", "b"}, scan.Modules)
	assert.Equal(t, 3, scan.Hierarchy.Len())
	assert.Len(t, scan.Rules, 3)
}

func TestAggregateResults(t *testing.T) {
	_, opts := newRepo(t, "a", "a/v2")

	changed, err := AggregateResults(opts, types.ChangeResult{"a": true, "a/v2": false}, false)
	require.NoError(t, err)
	assert.Equal(t, []types.ModulePath{"a"}, changed)
}

func TestScanOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Discovery.FollowSymlinks = true

	opts := ScanOptionsFromConfig(cfg, "/repo")
	assert.Equal(t, "/repo", opts.Root)
	assert.Equal(t, "go.mod", opts.Manifest)
	assert.Equal(t, cfg.Discovery.Ignore, opts.Ignore)
	assert.True(t, opts.FollowSymlinks)
}
