package evaluator

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultCacheSize bounds the match cache when no size is configured
const DefaultCacheSize = 4096

// Decision is the outcome of applying one rule's patterns to a path
type Decision struct {
	// Included is the final decision
	Included bool

	// Matched reports whether any pattern matched
	Matched bool

	// PatternIndex is the index of the deciding pattern, -1 when none matched
	PatternIndex int
}

type matchKey struct {
	pattern string
	path    string
}

// Glob evaluates rules with doublestar patterns
type Glob struct {
	cache  *lru.Cache[matchKey, bool]
	logger zerolog.Logger
}

// NewGlob creates an evaluator whose match cache holds up to cacheSize
// entries. A size of 0 disables the cache.
func NewGlob(cacheSize int) (*Glob, error) {
	g := &Glob{logger: logging.GetLogger("evaluator")}
	if cacheSize < 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, "cache size must not be negative, got %d", cacheSize)
	}
	if cacheSize > 0 {
		cache, err := lru.New[matchKey, bool](cacheSize)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to create match cache")
		}
		g.cache = cache
	}
	return g, nil
}

// Evaluate reports true for a rule when at least one changed file ends up
// included by its patterns. Every rule gets an entry.
func (g *Glob) Evaluate(ctx context.Context, rules []types.FilterRule, changes types.Changeset) (types.ChangeResult, error) {
	defer logging.LogOperationStart(g.logger, "evaluate")()

	for _, rule := range rules {
		if err := validate(rule); err != nil {
			return nil, err
		}
	}

	result := make(types.ChangeResult, len(rules))
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrEvaluatorFailure, "evaluation cancelled")
		}

		patterns := rule.Patterns()
		changed := false
		for _, file := range changes {
			if g.Decide(patterns, file).Included {
				changed = true
				g.logger.Trace().
					Str("rule", rule.ID.ID()).
					Str("file", file).
					Msg("File matched rule")
				break
			}
		}
		result[rule.ID.ID()] = changed
	}

	g.logger.Debug().
		Int("rules", len(rules)).
		Int("files", len(changes)).
		Msg("Evaluated rules")
	return result, nil
}

// Decide applies patterns to path in order. A pattern prefixed with "!"
// excludes; the last matching pattern wins and nothing matching means not
// included. Patterns must be valid.
func (g *Glob) Decide(patterns []string, path string) Decision {
	d := Decision{PatternIndex: -1}
	for i, p := range patterns {
		include := true
		if strings.HasPrefix(p, types.ExcludePrefix) {
			include = false
			p = p[len(types.ExcludePrefix):]
		}
		if g.match(p, path) {
			d = Decision{Included: include, Matched: true, PatternIndex: i}
		}
	}
	return d
}

func (g *Glob) match(pattern, path string) bool {
	if g.cache == nil {
		ok, _ := doublestar.Match(pattern, path)
		return ok
	}

	key := matchKey{pattern: pattern, path: path}
	if ok, hit := g.cache.Get(key); hit {
		return ok
	}
	ok, _ := doublestar.Match(pattern, path)
	g.cache.Add(key, ok)
	return ok
}

// CacheLen returns the number of memoized match decisions
func (g *Glob) CacheLen() int {
	if g.cache == nil {
		return 0
	}
	return g.cache.Len()
}

func validate(rule types.FilterRule) error {
	for _, p := range rule.Patterns() {
		p = strings.TrimPrefix(p, types.ExcludePrefix)
		if p == "" || !doublestar.ValidatePattern(p) {
			return errors.Newf(errors.ErrEvaluatorFailure, "invalid pattern %q", p).
				WithDetail("rule", rule.ID.ID())
		}
	}
	return nil
}
