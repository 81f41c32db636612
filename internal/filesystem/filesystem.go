package filesystem

import (
	"os"

	"github.com/spf13/afero"
)

// File is an open file handle returned by Open and OpenFile.
type File = afero.File

// FileSystem abstracts file system operations for testability
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Open(path string) (File, error)
	OpenFile(path string, flag int, perm os.FileMode) (File, error)
	Stat(path string) (os.FileInfo, error)
	Lstat(path string) (os.FileInfo, error)
	Mkdir(path string, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	ReadDir(path string) ([]os.FileInfo, error)
	Remove(path string) error
	Rename(oldPath, newPath string) error
}

// AferoFileSystem implements FileSystem on top of an afero backend.
type AferoFileSystem struct {
	fs afero.Fs
}

// NewOSFileSystem creates a FileSystem backed by the real OS file system
func NewOSFileSystem() *AferoFileSystem {
	return New(afero.NewOsFs())
}

// NewMemoryFileSystem creates a volatile in-memory FileSystem.
func NewMemoryFileSystem() *AferoFileSystem {
	return New(afero.NewMemMapFs())
}

// New wraps an arbitrary afero backend.
func New(backend afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{fs: backend}
}

func (a *AferoFileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

func (a *AferoFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(a.fs, path, data, perm)
}

func (a *AferoFileSystem) Open(path string) (File, error) {
	return a.fs.Open(path)
}

func (a *AferoFileSystem) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	return a.fs.OpenFile(path, flag, perm)
}

func (a *AferoFileSystem) Stat(path string) (os.FileInfo, error) {
	return a.fs.Stat(path)
}

// Lstat does not follow symlinks when the backend supports it and falls back
// to Stat otherwise.
func (a *AferoFileSystem) Lstat(path string) (os.FileInfo, error) {
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return a.fs.Stat(path)
}

func (a *AferoFileSystem) Mkdir(path string, perm os.FileMode) error {
	return a.fs.Mkdir(path, perm)
}

func (a *AferoFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// ReadDir returns the entries of path sorted by name.
func (a *AferoFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	return afero.ReadDir(a.fs, path)
}

func (a *AferoFileSystem) Remove(path string) error {
	return a.fs.Remove(path)
}

func (a *AferoFileSystem) Rename(oldPath, newPath string) error {
	return a.fs.Rename(oldPath, newPath)
}
