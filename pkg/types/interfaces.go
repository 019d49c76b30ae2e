package types

import (
	"io/fs"
)

// FS is the read-only filesystem interface required by module discovery
type FS interface {
	// Stat follows symbolic links
	Stat(name string) (fs.FileInfo, error)

	// ReadDir lists a directory sorted by name. Entries report the type of
	// the entry itself, so a symbolic link shows up as fs.ModeSymlink.
	ReadDir(name string) ([]fs.DirEntry, error)

	// RealPath resolves every symbolic link in name and returns a clean
	// absolute path. Filesystems without link support return the cleaned name.
	RealPath(name string) (string, error)
}
