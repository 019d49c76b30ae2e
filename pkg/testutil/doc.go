// Package testutil provides utilities for testing monomod components.
//
// Key components:
//   - TestEnvironment: a repository tree rooted either in an in-memory afero
//     filesystem (EnvMemoryOnly) or in a real temp directory (EnvIsolated)
//   - AddModule / AddFile helpers that declare trees inline in tests
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated only for symlink and permission
//     behaviour that needs the OS
//   - All test data should be defined inline, not in external files
package testutil
