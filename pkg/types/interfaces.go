package types

import "io/fs"

// FS is the filesystem surface dotfm needs. Implementations must report
// errors compatible with errors.Is(err, fs.ErrExist) and fs.ErrNotExist.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
}

// Pather provides the two roots every dotfm operation works between
type Pather interface {
	// DotfilesRoot returns the repository holding the managed files
	DotfilesRoot() string

	// HomeDir returns the directory receiving the links
	HomeDir() string
}
