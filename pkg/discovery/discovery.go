// Package discovery locates module roots by walking a repository tree for
// manifest files.
package discovery

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/filesystem"
	"github.com/lucaspopp0/go-monorepo-test/pkg/logging"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultManifest marks a Go module root
const DefaultManifest = "go.mod"

// Options configures a discovery run
type Options struct {
	// Root is the directory to walk
	Root string

	// Manifest is a glob matched against file names, or against the
	// repository-relative path when it contains a "/"
	Manifest string

	// Ignore holds globs of directories that are never descended into. A
	// glob is matched against the directory name, or against the
	// repository-relative path when it contains a "/"
	Ignore []string

	// FollowSymlinks descends into symbolic links to directories
	FollowSymlinks bool

	// FS defaults to the OS filesystem
	FS types.FS
}

type walker struct {
	fs        types.FS
	manifest  string
	matchPath bool
	ignore    []string
	follow    bool
	logger    zerolog.Logger

	visited map[string]bool
	found   map[types.ModulePath]struct{}
}

// Discover walks opts.Root and returns one ModulePath per directory holding
// a manifest file, sorted by path. Finding nothing is not an error; an
// unreadable or missing root is a DiscoveryFailure.
func Discover(opts Options) ([]types.ModulePath, error) {
	logger := logging.GetLogger("discovery")
	defer logging.LogOperationStart(logger, "discover")()

	manifest := opts.Manifest
	if manifest == "" {
		manifest = DefaultManifest
	}
	if !doublestar.ValidatePattern(manifest) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid manifest pattern %q", manifest)
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	info, err := fsys.Stat(opts.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrDiscoveryFailure, "module root does not exist").
				WithDetail("path", opts.Root)
		}
		return nil, errors.Wrap(err, errors.ErrDiscoveryFailure, "cannot access module root").
			WithDetail("path", opts.Root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrDiscoveryFailure, "module root is not a directory").
			WithDetail("path", opts.Root)
	}

	w := &walker{
		fs:        fsys,
		manifest:  manifest,
		matchPath: strings.Contains(manifest, "/"),
		ignore:    opts.Ignore,
		follow:    opts.FollowSymlinks,
		logger:    logger,
		visited:   make(map[string]bool),
		found:     make(map[types.ModulePath]struct{}),
	}

	if err := w.walk(opts.Root, ""); err != nil {
		return nil, err
	}

	modules := make([]types.ModulePath, 0, len(w.found))
	for p := range w.found {
		modules = append(modules, p)
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i] < modules[j]
	})

	logger.Info().
		Str("root", opts.Root).
		Str("manifest", manifest).
		Int("count", len(modules)).
		Msg("Discovered modules")
	return modules, nil
}

// walk visits dir, whose repository-relative path is rel ("" for the root)
func (w *walker) walk(dir, rel string) error {
	if real, err := w.fs.RealPath(dir); err == nil {
		if w.visited[real] {
			w.logger.Trace().Str("dir", dir).Str("real", real).Msg("Directory already visited, skipping")
			return nil
		}
		w.visited[real] = true
	}

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		if rel == "" {
			return errors.Wrap(err, errors.ErrDiscoveryFailure, "cannot read module root").
				WithDetail("path", dir)
		}
		w.logger.Warn().Err(err).Str("dir", dir).Msg("Cannot read directory, skipping")
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(dir, name)
		childRel := name
		if rel != "" {
			childRel = path.Join(rel, name)
		}

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := w.fs.Stat(full)
			if err != nil {
				w.logger.Trace().Str("path", childRel).Msg("Dangling symlink, skipping")
				continue
			}
			isDir = target.IsDir()
			if isDir && !w.follow {
				w.logger.Trace().Str("path", childRel).Msg("Not following directory symlink")
				continue
			}
		}

		if isDir {
			if w.ignored(name, childRel) {
				w.logger.Trace().Str("path", childRel).Msg("Skipping ignored directory")
				continue
			}
			if err := w.walk(full, childRel); err != nil {
				return err
			}
			continue
		}

		if w.isManifest(name, childRel) {
			module := types.NewModulePath(rel)
			w.found[module] = struct{}{}
			w.logger.Trace().Str("module", module.ID()).Str("manifest", childRel).Msg("Found manifest")
		}
	}

	return nil
}

func (w *walker) ignored(name, rel string) bool {
	for _, pattern := range w.ignore {
		candidate := name
		if strings.Contains(pattern, "/") {
			candidate = rel
		}
		if ok, _ := doublestar.Match(strings.TrimSuffix(pattern, "/"), candidate); ok {
			return true
		}
	}
	return false
}

func (w *walker) isManifest(name, rel string) bool {
	candidate := name
	if w.matchPath {
		candidate = rel
	}
	ok, _ := doublestar.Match(w.manifest, candidate)
	return ok
}
