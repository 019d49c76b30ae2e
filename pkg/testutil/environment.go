// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Build repository trees for discovery and pipeline tests

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucaspopp0/go-monorepo-test/pkg/filesystem"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// Manifest is the manifest file name written by AddModule
const Manifest = "go.mod"

// TestEnvironment is a repository tree for one test
type TestEnvironment struct {
	// Root is the repository root inside FS
	Root string

	// FS reads the tree; Afero writes it
	FS    types.FS
	Afero afero.Fs

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new, empty repository tree
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/repo"
		env.Afero = afero.NewMemMapFs()
		env.FS = filesystem.NewAferoFS(env.Afero)
	case EnvIsolated:
		env.Root = filepath.Join(t.TempDir(), "repo")
		env.Afero = afero.NewOsFs()
		env.FS = filesystem.NewOS()
	}

	// Keep log files out of the real home directory
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	require.NoError(t, env.Afero.MkdirAll(env.Root, 0755))
	return env
}

// Path returns the absolute path of a repository-relative path
func (env *TestEnvironment) Path(rel string) string {
	return filepath.Join(env.Root, filepath.FromSlash(rel))
}

// AddModule writes a manifest at rel ("" or "." for the root)
func (env *TestEnvironment) AddModule(rel string) {
	env.t.Helper()
	name := types.NewModulePath(rel).ID()
	env.AddFile(filepath.ToSlash(filepath.Join(rel, Manifest)), fmt.Sprintf("module example.com/%s\n", name))
}

// AddModules writes a manifest for every path
func (env *TestEnvironment) AddModules(rels ...string) {
	env.t.Helper()
	for _, rel := range rels {
		env.AddModule(rel)
	}
}

// AddFile writes content at a repository-relative path, creating parents
func (env *TestEnvironment) AddFile(rel, content string) {
	env.t.Helper()
	full := env.Path(rel)
	require.NoError(env.t, env.Afero.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(env.t, afero.WriteFile(env.Afero, full, []byte(content), 0644))
}

// AddDir creates an empty directory at a repository-relative path
func (env *TestEnvironment) AddDir(rel string) {
	env.t.Helper()
	require.NoError(env.t, env.Afero.MkdirAll(env.Path(rel), 0755))
}

// Symlink creates link pointing at target; both are repository-relative.
// Only available in EnvIsolated.
func (env *TestEnvironment) Symlink(target, link string) {
	env.t.Helper()
	require.Equal(env.t, EnvIsolated, env.Type, "symlinks need a real filesystem")
	require.NoError(env.t, os.MkdirAll(filepath.Dir(env.Path(link)), 0755))
	require.NoError(env.t, os.Symlink(env.Path(target), env.Path(link)))
}
