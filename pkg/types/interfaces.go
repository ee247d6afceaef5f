package types

import (
	"io/fs"
)

// FS is the filesystem interface required for pipeline operations.
// The pipeline never touches the OS filesystem directly; every move,
// read and write goes through this seam so callers control it.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Removal operations
	Remove(name string) error
	RemoveAll(path string) error
}
