// Package config handles configuration management for monomod.
// It layers, in increasing precedence: embedded defaults, the repository's
// .monomod.toml, an optional env file and MONOMOD_ environment variables.
// Command-line flags are applied on top by the command layer.
package config
