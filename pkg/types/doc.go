// Package types defines the core types and interfaces used throughout monomod.
// This includes the ModulePath identity, the ModuleNode hierarchy entry,
// FilterRule and ChangeResult exchanged with file-change evaluators, and the
// FS interface module discovery reads the repository through.
package types
