// Package workdir holds the working-directory session: a single current
// directory plus the file and folder operations that resolve names against it.
//
// Operations never return errors. Every failure is folded into an Outcome so
// callers can branch on Outcome.Kind and show Outcome.Message.
package workdir

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/mainbong/file_manager/internal/filesystem"
)

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

var (
	ErrNotDir   = errors.New("not a directory")
	ErrIsDir    = errors.New("is a directory")
	ErrNotText  = errors.New("content is not valid UTF-8 text")
	ErrSameFile = errors.New("source and destination are the same file")
)

// Session tracks the current directory. It is not safe for concurrent use.
type Session struct {
	dir string
	fs  filesystem.FileSystem
}

// Entry describes one item of a directory listing.
type Entry struct {
	Name    string
	Size    int64
	IsDir   bool
	ModTime time.Time
}

// New creates a session positioned at start on the OS file system.
func New(start string) (*Session, error) {
	return NewWithFS(start, filesystem.NewOSFileSystem())
}

// NewWithFS creates a session on a custom FileSystem (for testing)
func NewWithFS(start string, fsys filesystem.FileSystem) (*Session, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start directory: %w", err)
	}

	info, err := fsys.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open start directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("start directory %s: %w", abs, ErrNotDir)
	}

	return &Session{dir: abs, fs: fsys}, nil
}

// Dir returns the current directory.
func (s *Session) Dir() string {
	return s.dir
}

// Resolve joins name onto the current directory.
func (s *Session) Resolve(name string) string {
	return filepath.Join(s.dir, name)
}

// Stale reports whether the current directory has disappeared or stopped
// being a directory since it was entered.
func (s *Session) Stale() bool {
	info, err := s.fs.Stat(s.dir)
	return err != nil || !info.IsDir()
}

// CreateFolder creates a single directory level.
func (s *Session) CreateFolder(name string) Outcome {
	path := s.Resolve(name)

	if _, err := s.fs.Lstat(path); err == nil {
		return condition(OpCreateFolder, AlreadyExists, name, "Folder '%s' already exists.", name)
	}

	if err := s.fs.Mkdir(path, dirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return condition(OpCreateFolder, AlreadyExists, name, "Folder '%s' already exists.", name)
		}
		return failed(OpCreateFolder, name, err, "Failed to create folder '%s'", name)
	}

	return succeeded(OpCreateFolder, name, "Folder '%s' created.", name)
}

// DeleteFolder removes an empty directory. It never recurses.
func (s *Session) DeleteFolder(name string) Outcome {
	path := s.Resolve(name)

	info, err := s.fs.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(OpDeleteFolder, NotFound, name, "Folder '%s' does not exist.", name)
		}
		return failed(OpDeleteFolder, name, err, "Failed to delete folder '%s'", name)
	}
	if !info.IsDir() {
		return failed(OpDeleteFolder, name, ErrNotDir, "Failed to delete folder '%s'", name)
	}

	entries, err := s.fs.ReadDir(path)
	if err != nil {
		return failed(OpDeleteFolder, name, err, "Failed to delete folder '%s'", name)
	}
	if len(entries) > 0 {
		return failed(OpDeleteFolder, name, fmt.Errorf("directory not empty (%d entries)", len(entries)), "Failed to delete folder '%s'", name)
	}

	if err := s.fs.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(OpDeleteFolder, NotFound, name, "Folder '%s' does not exist.", name)
		}
		return failed(OpDeleteFolder, name, err, "Failed to delete folder '%s'", name)
	}

	return succeeded(OpDeleteFolder, name, "Folder '%s' deleted.", name)
}

// Enter moves the session into a subdirectory.
func (s *Session) Enter(name string) Outcome {
	path := s.Resolve(name)

	info, err := s.fs.Stat(path)
	if err != nil || !info.IsDir() {
		return condition(OpEnter, NotFound, name, "Folder '%s' not found.", name)
	}

	s.dir = path
	return succeeded(OpEnter, name, "Entered folder '%s'.", name)
}

// Up moves the session to the parent directory.
func (s *Session) Up() Outcome {
	parent := filepath.Dir(s.dir)
	if parent == s.dir {
		return condition(OpUp, AtRoot, "", "Already at the root folder.")
	}

	s.dir = parent
	return succeeded(OpUp, "", "Moved up to '%s'.", parent)
}

// CreateFile creates a zero-length file. An existing entry is left untouched.
func (s *Session) CreateFile(name string) Outcome {
	path := s.Resolve(name)

	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return condition(OpCreateFile, AlreadyExists, name, "File '%s' already exists.", name)
		}
		return failed(OpCreateFile, name, err, "Failed to create empty file '%s'", name)
	}
	if err := f.Close(); err != nil {
		return failed(OpCreateFile, name, err, "Failed to create empty file '%s'", name)
	}

	return succeeded(OpCreateFile, name, "Empty file '%s' created.", name)
}

// WriteText replaces the content of name with text, creating it if needed.
func (s *Session) WriteText(name, text string) Outcome {
	path := s.Resolve(name)

	if info, err := s.fs.Stat(path); err == nil && info.IsDir() {
		return failed(OpWriteText, name, ErrIsDir, "Failed to write to file '%s'", name)
	}

	if err := s.fs.WriteFile(path, []byte(text), filePerm); err != nil {
		return failed(OpWriteText, name, err, "Failed to write to file '%s'", name)
	}

	return succeeded(OpWriteText, name, "Text written to file '%s'.", name)
}

// ReadFile returns the full content of name in Outcome.Content.
func (s *Session) ReadFile(name string) Outcome {
	path := s.Resolve(name)

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(OpReadFile, NotFound, name, "File '%s' not found.", name)
		}
		return failed(OpReadFile, name, err, "Failed to read file '%s'", name)
	}
	if info.IsDir() {
		return failed(OpReadFile, name, ErrIsDir, "Failed to read file '%s'", name)
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(OpReadFile, NotFound, name, "File '%s' not found.", name)
		}
		return failed(OpReadFile, name, err, "Failed to read file '%s'", name)
	}
	if !utf8.Valid(data) {
		return failed(OpReadFile, name, ErrNotText, "Failed to read file '%s'", name)
	}

	out := succeeded(OpReadFile, name, "Contents of file '%s':", name)
	out.Content = string(data)
	return out
}

// DeleteFile removes a file. Directories are refused.
func (s *Session) DeleteFile(name string) Outcome {
	path := s.Resolve(name)

	info, err := s.fs.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(OpDeleteFile, NotFound, name, "File '%s' not found.", name)
		}
		return failed(OpDeleteFile, name, err, "Failed to delete file '%s'", name)
	}
	if info.IsDir() {
		return failed(OpDeleteFile, name, ErrIsDir, "Failed to delete file '%s'", name)
	}

	if err := s.fs.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(OpDeleteFile, NotFound, name, "File '%s' not found.", name)
		}
		return failed(OpDeleteFile, name, err, "Failed to delete file '%s'", name)
	}

	return succeeded(OpDeleteFile, name, "File '%s' deleted.", name)
}

// Copy duplicates source into destFolder, creating destFolder if needed.
// An existing file of the same name inside destFolder is overwritten.
func (s *Session) Copy(source, destFolder string) Outcome {
	return s.transfer(OpCopy, source, destFolder)
}

// Move relocates source into destFolder, creating destFolder if needed.
// An existing file of the same name inside destFolder is overwritten.
func (s *Session) Move(source, destFolder string) Outcome {
	return s.transfer(OpMove, source, destFolder)
}

func (s *Session) transfer(op Op, source, destFolder string) Outcome {
	verb, past := "copy", "copied"
	if op == OpMove {
		verb, past = "move", "moved"
	}

	srcPath := s.Resolve(source)
	info, err := s.fs.Stat(srcPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(op, NotFound, source, "File '%s' not found.", source)
		}
		return failed(op, source, err, "Failed to %s file '%s'", verb, source)
	}
	if info.IsDir() {
		return failed(op, source, ErrIsDir, "Failed to %s file '%s'", verb, source)
	}

	destDir := s.Resolve(destFolder)
	target := filepath.Join(destDir, filepath.Base(srcPath))
	if target == srcPath {
		if op == OpMove {
			return succeeded(op, source, "File '%s' is already in folder '%s'.", source, destFolder)
		}
		return failed(op, source, ErrSameFile, "Failed to %s file '%s'", verb, source)
	}

	created, err := s.ensureDir(destDir)
	if err != nil {
		return failed(op, source, err, "Failed to %s file '%s'", verb, source)
	}

	if op == OpMove {
		err = s.fs.Rename(srcPath, target)
	} else {
		err = s.copyFile(srcPath, target, info.Mode().Perm())
	}
	if err != nil {
		s.rollback(created)
		if errors.Is(err, fs.ErrNotExist) {
			return condition(op, NotFound, source, "File '%s' not found.", source)
		}
		return failed(op, source, err, "Failed to %s file '%s'", verb, source)
	}

	return succeeded(op, source, "File '%s' %s to folder '%s'.", source, past, destFolder)
}

// Rename renames oldName to newName within the current directory. An
// existing newName is never overwritten.
func (s *Session) Rename(oldName, newName string) Outcome {
	oldPath := s.Resolve(oldName)
	newPath := s.Resolve(newName)

	if _, err := s.fs.Lstat(oldPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return condition(OpRename, NotFound, oldName, "File '%s' not found.", oldName)
		}
		return failed(OpRename, oldName, err, "Failed to rename file '%s'", oldName)
	}

	if _, err := s.fs.Lstat(newPath); err == nil {
		return condition(OpRename, AlreadyExists, oldName, "File '%s' already exists.", newName)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return failed(OpRename, oldName, err, "Failed to rename file '%s'", oldName)
	}

	// The source is known to exist here, so a missing target folder is a
	// failure rather than NotFound.
	if info, err := s.fs.Stat(filepath.Dir(newPath)); err != nil {
		return failed(OpRename, oldName, err, "Failed to rename file '%s'", oldName)
	} else if !info.IsDir() {
		return failed(OpRename, oldName, ErrNotDir, "Failed to rename file '%s'", oldName)
	}

	if err := s.fs.Rename(oldPath, newPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return condition(OpRename, AlreadyExists, oldName, "File '%s' already exists.", newName)
		}
		return failed(OpRename, oldName, err, "Failed to rename file '%s'", oldName)
	}

	return succeeded(OpRename, oldName, "File '%s' renamed to '%s'.", oldName, newName)
}

// List returns the entries of the current directory sorted by name.
func (s *Session) List(showHidden bool) ([]Entry, Outcome) {
	infos, err := s.fs.ReadDir(s.dir)
	if err != nil {
		return nil, failed(OpList, s.dir, err, "Failed to list folder '%s'", s.dir)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if !showHidden && len(info.Name()) > 0 && info.Name()[0] == '.' {
			continue
		}
		entries = append(entries, Entry{
			Name:    info.Name(),
			Size:    info.Size(),
			IsDir:   info.IsDir(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries, succeeded(OpList, s.dir, "%d entries in '%s'.", len(entries), s.dir)
}

// ensureDir creates dir and any missing parents. It returns the directories
// it created, deepest first, so a failed transfer can remove them again.
func (s *Session) ensureDir(dir string) ([]string, error) {
	var missing []string
	for p := dir; ; p = filepath.Dir(p) {
		info, err := s.fs.Stat(p)
		if err == nil {
			if !info.IsDir() {
				return nil, fmt.Errorf("%s: %w", p, ErrNotDir)
			}
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		missing = append(missing, p)
		if filepath.Dir(p) == p {
			break
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		s.rollback(missing)
		return nil, fmt.Errorf("failed to create destination folder: %w", err)
	}
	return missing, nil
}

// rollback removes directories created by ensureDir, deepest first. Anything
// that is no longer empty stays.
func (s *Session) rollback(created []string) {
	for _, dir := range created {
		entries, err := s.fs.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := s.fs.Remove(dir); err != nil {
			return
		}
	}
}

func (s *Session) copyFile(src, dst string, perm os.FileMode) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = s.fs.Remove(dst)
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = s.fs.Remove(dst)
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
