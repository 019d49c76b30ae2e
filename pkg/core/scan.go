package core

import (
	"github.com/lucaspopp0/go-monorepo-test/pkg/config"
	"github.com/lucaspopp0/go-monorepo-test/pkg/discovery"
	"github.com/lucaspopp0/go-monorepo-test/pkg/filters"
	"github.com/lucaspopp0/go-monorepo-test/pkg/hierarchy"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
)

// ScanOptions locates the modules of a repository
type ScanOptions struct {
	Root           string
	Manifest       string
	Ignore         []string
	FollowSymlinks bool

	// FS defaults to the OS filesystem
	FS types.FS
}

// ScanOptionsFromConfig fills ScanOptions from the discovery section
func ScanOptionsFromConfig(cfg *config.Config, root string) ScanOptions {
	return ScanOptions{
		Root:           root,
		Manifest:       cfg.Discovery.Manifest,
		Ignore:         cfg.Discovery.Ignore,
		FollowSymlinks: cfg.Discovery.FollowSymlinks,
	}
}

// Scan is the module set of a repository with its hierarchy and rules
type Scan struct {
	Modules   []types.ModulePath
	Hierarchy *hierarchy.Hierarchy
	Rules     []types.FilterRule
}

// ScanRepository discovers modules, resolves their hierarchy and builds one
// filter rule per module.
func ScanRepository(opts ScanOptions) (*Scan, error) {
	logger := logging.GetLogger("core.scan")

	modules, err := discovery.Discover(discovery.Options{
		Root:           opts.Root,
		Manifest:       opts.Manifest,
		Ignore:         opts.Ignore,
		FollowSymlinks: opts.FollowSymlinks,
		FS:             opts.FS,
	})
	if err != nil {
		return nil, err
	}

	h, err := hierarchy.Resolve(modules)
	if err != nil {
		return nil, err
	}

	scan := &Scan{
		Modules:   h.Paths(),
		Hierarchy: h,
		Rules:     filters.Build(h),
	}

	logger.Debug().
		Str("root", opts.Root).
		Int("modules", len(scan.Modules)).
		Msg("Scanned repository")
	return scan, nil
}

// BuildFilters returns the filter rules of the repository at opts.Root
func BuildFilters(opts ScanOptions) ([]types.FilterRule, error) {
	scan, err := ScanRepository(opts)
	if err != nil {
		return nil, err
	}
	return scan.Rules, nil
}
