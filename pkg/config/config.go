package config

import (
	"fmt"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
)

// Supported output formats
var (
	OutputFormats  = []string{"auto", "term", "text", "json"}
	FiltersFormats = []string{"yaml", "json", "toml"}
)

// Config is the merged monomod configuration
type Config struct {
	Discovery Discovery `koanf:"discovery"`
	Output    Output    `koanf:"output"`
	Results   Results   `koanf:"results"`
	Evaluator Evaluator `koanf:"evaluator"`

	// Source is the repository config file that was loaded, if any
	Source string `koanf:"-"`
}

// Discovery configures module discovery
type Discovery struct {
	Manifest       string   `koanf:"manifest"`
	Ignore         []string `koanf:"ignore"`
	FollowSymlinks bool     `koanf:"follow_symlinks"`
}

// Output configures rendering
type Output struct {
	Format        string `koanf:"format"`
	FiltersFormat string `koanf:"filters_format"`
}

// Results configures aggregation of evaluator results
type Results struct {
	Strict bool `koanf:"strict"`
}

// Evaluator configures the in-process glob evaluator
type Evaluator struct {
	CacheSize int `koanf:"cache_size"`
}

// Validate checks the merged configuration
func (c *Config) Validate() error {
	if c.Discovery.Manifest == "" {
		return errors.New(errors.ErrConfigParse, "discovery.manifest must not be empty")
	}
	if !doublestar.ValidatePattern(c.Discovery.Manifest) {
		return errors.Newf(errors.ErrConfigParse, "discovery.manifest is not a valid pattern: %q", c.Discovery.Manifest)
	}
	for _, pattern := range c.Discovery.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Newf(errors.ErrConfigParse, "discovery.ignore contains an invalid pattern: %q", pattern)
		}
	}
	if err := checkFormat("output.format", c.Output.Format, OutputFormats); err != nil {
		return err
	}
	if err := checkFormat("output.filters_format", c.Output.FiltersFormat, FiltersFormats); err != nil {
		return err
	}
	if c.Evaluator.CacheSize < 0 {
		return errors.Newf(errors.ErrConfigParse, "evaluator.cache_size must not be negative, got %d", c.Evaluator.CacheSize)
	}
	return nil
}

func checkFormat(key, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return errors.New(errors.ErrConfigParse, fmt.Sprintf("%s must be one of %v, got %q", key, allowed, value)).
		WithDetail("key", key)
}
