// pkg/discovery/discovery_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: Memory FS, real temp dirs for symlinks
// PURPOSE: Test manifest discovery over repository trees

package discovery_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lucaspopp0/go-monorepo-test/pkg/config"
	"github.com/lucaspopp0/go-monorepo-test/pkg/discovery"
	"github.com/lucaspopp0/go-monorepo-test/pkg/errors"
	"github.com/lucaspopp0/go-monorepo-test/pkg/testutil"
	"github.com/lucaspopp0/go-monorepo-test/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discover(t *testing.T, env *testutil.TestEnvironment, mutate ...func(*discovery.Options)) []types.ModulePath {
	t.Helper()
	opts := discovery.Options{
		Root:     env.Root,
		Manifest: "go.mod",
		Ignore:   []string{".git", "node_modules", "vendor"},
		FS:       env.FS,
	}
	for _, m := range mutate {
		m(&opts)
	}
	modules, err := discovery.Discover(opts)
	require.NoError(t, err)
	return modules
}

func TestDiscover_NestedModules(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("a", "a/v2", "a/v2/v3", "b", "tools/lint")
	env.AddFile("a/x.go", "package a")
	env.AddFile("docs/README.md", "# docs")

	modules := discover(t, env)

	assert.Equal(t, []types.ModulePath{"a", "a/v2", "a/v2/v3", "b", "tools/lint"}, modules)
}

func TestDiscover_RootModule(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules(".", "a")

	modules := discover(t, env)

	assert.Equal(t, []types.ModulePath{"", "a"}, modules)
}

func TestDiscover_EmptyTreeIsNotAnError(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFile("src/main.go", "package main")

	modules := discover(t, env)

	assert.Empty(t, modules)
	assert.NotNil(t, modules)
}

func TestDiscover_SkipsIgnoredDirectories(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("a", "vendor/github.com/x/y", "a/node_modules/pkg")
	env.AddFile(".git/go.mod", "not a module")

	modules := discover(t, env)

	assert.Equal(t, []types.ModulePath{"a"}, modules)
}

func TestDiscover_IgnoreGlobs(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("a", "build-cache/x", "build-out/y")

	modules := discover(t, env, func(o *discovery.Options) {
		o.Ignore = []string{"build-*"}
	})

	assert.Equal(t, []types.ModulePath{"a"}, modules)
}

func TestDiscover_IgnorePathGlobs(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("tools/legacy", "other/legacy", "tools/current", "svc/gen/x", "svc/api/gen/y")

	modules := discover(t, env, func(o *discovery.Options) {
		o.Ignore = []string{"tools/legacy", "svc/**/gen/"}
	})

	assert.Equal(t, []types.ModulePath{"other/legacy", "tools/current"}, modules)
}

func TestDiscover_DefaultIgnoreKeepsVendorAndTestdataModules(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("x", "x/testdata/m", "x/vendor/m", "web/node_modules/dep")
	env.AddFile(".git/modules/go.mod", "not a module")

	modules := discover(t, env, func(o *discovery.Options) {
		o.Ignore = config.Default().Discovery.Ignore
	})

	assert.Equal(t, []types.ModulePath{"x", "x/testdata/m", "x/vendor/m"}, modules)
}

func TestDiscover_ManifestGlob(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFile("svc/api/Api.csproj", "<Project/>")
	env.AddFile("svc/web/Web.csproj", "<Project/>")
	env.AddFile("svc/web/Web.Tests.csproj", "<Project/>")
	env.AddModule("a")

	modules := discover(t, env, func(o *discovery.Options) {
		o.Manifest = "*.csproj"
	})

	assert.Equal(t, []types.ModulePath{"svc/api", "svc/web"}, modules, "one module per directory")
}

func TestDiscover_ManifestPathPattern(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("services/a", "services/b", "tools/c")

	modules := discover(t, env, func(o *discovery.Options) {
		o.Manifest = "services/**/go.mod"
	})

	assert.Equal(t, []types.ModulePath{"services/a", "services/b"}, modules)
}

func TestDiscover_DefaultManifest(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("a")

	modules := discover(t, env, func(o *discovery.Options) {
		o.Manifest = ""
	})

	assert.Equal(t, []types.ModulePath{"a"}, modules)
}

func TestDiscover_Idempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddModules("z", "a", "m/n", "a/b")

	first := discover(t, env)
	second := discover(t, env)

	assert.Equal(t, first, second)
}

func TestDiscover_Errors(t *testing.T) {
	t.Run("missing_root", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		_, err := discovery.Discover(discovery.Options{Root: env.Path("missing"), FS: env.FS})

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDiscoveryFailure))
	})

	t.Run("root_is_a_file", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.AddFile("file.txt", "x")

		_, err := discovery.Discover(discovery.Options{Root: env.Path("file.txt"), FS: env.FS})

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDiscoveryFailure))
	})

	t.Run("invalid_manifest_pattern", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		_, err := discovery.Discover(discovery.Options{Root: env.Root, Manifest: "[go.mod", FS: env.FS})

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestDiscover_OSFilesystemByDefault(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddModules("a", "a/v2")

	modules, err := discovery.Discover(discovery.Options{Root: env.Root})

	require.NoError(t, err)
	assert.Equal(t, []types.ModulePath{"a", "a/v2"}, modules)
}

func TestDiscover_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	t.Run("not_followed_by_default", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		env.AddModules("real/mod")
		env.Symlink("real", "linked")

		modules := discover(t, env)

		assert.Equal(t, []types.ModulePath{"real/mod"}, modules)
	})

	t.Run("followed_when_enabled", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		env.AddModules("mod")
		env.AddDir("outside")
		require.NoError(t, os.WriteFile(filepath.Join(env.Path("outside"), "go.mod"), []byte("module x\n"), 0644))
		env.Symlink("outside", "inside/link")

		modules := discover(t, env, func(o *discovery.Options) {
			o.FollowSymlinks = true
		})

		// outside is reached once, through whichever path is walked first
		assert.Equal(t, []types.ModulePath{"inside/link", "mod"}, modules)
	})

	t.Run("cycle_terminates", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		env.AddModules("a", "a/b")
		env.Symlink("a", "a/b/loop")

		modules := discover(t, env, func(o *discovery.Options) {
			o.FollowSymlinks = true
		})

		assert.Equal(t, []types.ModulePath{"a", "a/b"}, modules)
	})

	t.Run("symlinked_manifest_counts", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		env.AddFile("shared/go.mod", "module shared\n")
		env.AddDir("svc")
		env.Symlink("shared/go.mod", "svc/go.mod")

		modules := discover(t, env)

		assert.Equal(t, []types.ModulePath{"shared", "svc"}, modules)
	})

	t.Run("dangling_symlink_ignored", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
		env.AddModules("a")
		env.Symlink("does-not-exist", "a/broken")

		modules := discover(t, env)

		assert.Equal(t, []types.ModulePath{"a"}, modules)
	})
}

func TestDiscover_UnreadableSubdirectoryIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddModules("a", "locked/inner")
	require.NoError(t, os.Chmod(env.Path("locked"), 0o000))
	t.Cleanup(func() { _ = os.Chmod(env.Path("locked"), 0o755) })

	modules := discover(t, env)

	assert.Equal(t, []types.ModulePath{"a"}, modules)
}
