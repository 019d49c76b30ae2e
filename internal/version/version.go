// Package version holds build metadata injected at link time.
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/lucaspopp0/go-monorepo-test/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/lucaspopp0/go-monorepo-test/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/lucaspopp0/go-monorepo-test/internal/version.Date={{.Date}}
)
