// Package filesystem provides filesystem implementations for monomod.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and an afero adapter used for in-memory trees in
// tests.
package filesystem
