package filesystem

import (
	"os"
	"path/filepath"
	"sync"
)

// Op names a FileSystem call that MockFileSystem can be told to fail.
type Op string

const (
	OpRead   Op = "read"
	OpWrite  Op = "write"
	OpStat   Op = "stat"
	OpMkdir  Op = "mkdir"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// MockFileSystem is an in-memory FileSystem for testing that can inject
// errors per operation and path.
type MockFileSystem struct {
	*AferoFileSystem
	mu     sync.RWMutex
	errors map[Op]map[string]error
}

// NewMockFileSystem creates a new MockFileSystem instance
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		AferoFileSystem: NewMemoryFileSystem(),
		errors:          make(map[Op]map[string]error),
	}
}

// SetError makes op fail with err whenever it touches path.
func (m *MockFileSystem) SetError(op Op, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errors[op] == nil {
		m.errors[op] = make(map[string]error)
	}
	m.errors[op][filepath.Clean(path)] = err
}

// SetReadError sets an error to return when reading a specific file
func (m *MockFileSystem) SetReadError(path string, err error) {
	m.SetError(OpRead, path, err)
}

// SetWriteError sets an error to return when writing a specific file
func (m *MockFileSystem) SetWriteError(path string, err error) {
	m.SetError(OpWrite, path, err)
}

// SetStatError sets an error to return when stating a specific path
func (m *MockFileSystem) SetStatError(path string, err error) {
	m.SetError(OpStat, path, err)
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (m *MockFileSystem) AddFile(path string, data []byte, perm os.FileMode) {
	_ = m.AferoFileSystem.MkdirAll(filepath.Dir(path), 0755)
	_ = m.AferoFileSystem.WriteFile(path, data, perm)
}

// AddDir adds a directory to the mock filesystem
func (m *MockFileSystem) AddDir(path string, perm os.FileMode) {
	_ = m.AferoFileSystem.MkdirAll(path, perm)
}

// GetFile returns the content of a file, or nil if it does not exist.
func (m *MockFileSystem) GetFile(path string) []byte {
	data, err := m.AferoFileSystem.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// Exists reports whether anything is stored at path.
func (m *MockFileSystem) Exists(path string) bool {
	_, err := m.AferoFileSystem.Stat(path)
	return err == nil
}

func (m *MockFileSystem) injected(op Op, path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[op][filepath.Clean(path)]
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if err := m.injected(OpRead, path); err != nil {
		return nil, err
	}
	return m.AferoFileSystem.ReadFile(path)
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := m.injected(OpWrite, path); err != nil {
		return err
	}
	return m.AferoFileSystem.WriteFile(path, data, perm)
}

func (m *MockFileSystem) Open(path string) (File, error) {
	if err := m.injected(OpRead, path); err != nil {
		return nil, err
	}
	return m.AferoFileSystem.Open(path)
}

func (m *MockFileSystem) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	op := OpRead
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE) != 0 {
		op = OpWrite
	}
	if err := m.injected(op, path); err != nil {
		return nil, err
	}
	return m.AferoFileSystem.OpenFile(path, flag, perm)
}

func (m *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	if err := m.injected(OpStat, path); err != nil {
		return nil, err
	}
	return m.AferoFileSystem.Stat(path)
}

func (m *MockFileSystem) Lstat(path string) (os.FileInfo, error) {
	if err := m.injected(OpStat, path); err != nil {
		return nil, err
	}
	return m.AferoFileSystem.Lstat(path)
}

func (m *MockFileSystem) Mkdir(path string, perm os.FileMode) error {
	if err := m.injected(OpMkdir, path); err != nil {
		return err
	}
	return m.AferoFileSystem.Mkdir(path, perm)
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if err := m.injected(OpMkdir, path); err != nil {
		return err
	}
	return m.AferoFileSystem.MkdirAll(path, perm)
}

func (m *MockFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	if err := m.injected(OpRead, path); err != nil {
		return nil, err
	}
	return m.AferoFileSystem.ReadDir(path)
}

func (m *MockFileSystem) Remove(path string) error {
	if err := m.injected(OpRemove, path); err != nil {
		return err
	}
	return m.AferoFileSystem.Remove(path)
}

func (m *MockFileSystem) Rename(oldPath, newPath string) error {
	if err := m.injected(OpRename, oldPath); err != nil {
		return err
	}
	return m.AferoFileSystem.Rename(oldPath, newPath)
}
