// Package export writes a client's fact history to a JSON snapshot file.
package export

import (
	"context"
	"os"
)

// Locker provides file locking for concurrent writers of the same snapshot.
type Locker interface {
	Lock(ctx context.Context) error
	Unlock() error
}

// FileSystem abstracts the file operations needed to write a snapshot.
type FileSystem interface {
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	Rename(oldpath, newpath string) error
}

// OSFileSystem is the production implementation of FileSystem.
type OSFileSystem struct{}

// WriteFile writes data to the file at the given path.
func (OSFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// MkdirAll creates a directory and all parent directories.
func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Remove removes the file at the given path.
func (OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

// Rename moves oldpath to newpath. This is atomic on POSIX systems.
func (OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}
