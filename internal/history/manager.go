// Package history keeps a journal of the operations run in one file-manager
// session and persists it as JSON so past sessions can be reviewed.
package history

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mainbong/file_manager/internal/filesystem"
	"github.com/mainbong/file_manager/internal/workdir"
)

// Action represents a single operation in the journal
type Action struct {
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Args      []string  `json:"args,omitempty"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Dir       string    `json:"dir"` // working directory the operation ran in
	Timestamp time.Time `json:"timestamp"`
}

// Journal is one run of the file manager with its actions
type Journal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDir  string    `json:"start_dir"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Actions   []Action  `json:"actions"`
}

// Failures counts the actions that did not succeed.
func (j *Journal) Failures() int {
	n := 0
	for _, a := range j.Actions {
		if a.Kind != workdir.Success.String() {
			n++
		}
	}
	return n
}

// Manager records actions and stores journals
type Manager struct {
	journalDir string
	current    *Journal
	fs         filesystem.FileSystem
}

// NewManager creates a new journal manager
func NewManager(journalDir, startDir string) (*Manager, error) {
	return NewManagerWithFS(journalDir, startDir, filesystem.NewOSFileSystem())
}

// NewManagerWithFS creates a new journal manager with a custom FileSystem (for testing)
func NewManagerWithFS(journalDir, startDir string, fs filesystem.FileSystem) (*Manager, error) {
	if err := fs.MkdirAll(journalDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	m := &Manager{
		journalDir: journalDir,
		fs:         fs,
	}
	m.New("default", startDir)
	return m, nil
}

// Record appends the outcome of an operation run in dir.
func (m *Manager) Record(dir string, o workdir.Outcome, args ...string) Action {
	action := Action{
		ID:        uuid.NewString(),
		Op:        string(o.Op),
		Args:      args,
		Kind:      o.Kind.String(),
		Message:   o.Message,
		Dir:       dir,
		Timestamp: time.Now(),
	}

	m.current.Actions = append(m.current.Actions, action)
	m.current.UpdatedAt = action.Timestamp
	return action
}

// Actions returns all actions in the current journal
func (m *Manager) Actions() []Action {
	return m.current.Actions
}

// Save writes the current journal to <journalDir>/<id>.json
func (m *Manager) Save(name string) error {
	if name != "" {
		m.current.Name = name
	}

	data, err := json.MarshalIndent(m.current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}

	if err := m.fs.WriteFile(m.path(m.current.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write journal file: %w", err)
	}

	return nil
}

// Load reads a saved journal by ID without making it current.
func (m *Manager) Load(id string) (*Journal, error) {
	data, err := m.fs.ReadFile(m.path(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read journal file: %w", err)
	}

	var journal Journal
	if err := json.Unmarshal(data, &journal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal: %w", err)
	}

	return &journal, nil
}

// List returns all saved journals, most recently updated first.
// Unreadable files are skipped.
func (m *Manager) List() ([]Journal, error) {
	files, err := m.fs.ReadDir(m.journalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal directory: %w", err)
	}

	var journals []Journal
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		data, err := m.fs.ReadFile(filepath.Join(m.journalDir, file.Name()))
		if err != nil {
			continue
		}

		var journal Journal
		if err := json.Unmarshal(data, &journal); err != nil {
			continue
		}

		journals = append(journals, journal)
	}

	sort.SliceStable(journals, func(i, j int) bool {
		return journals[i].UpdatedAt.After(journals[j].UpdatedAt)
	})

	return journals, nil
}

// Current returns the current journal
func (m *Manager) Current() *Journal {
	return m.current
}

// New starts a fresh journal
func (m *Manager) New(name, startDir string) {
	now := time.Now()
	m.current = &Journal{
		ID:        uuid.NewString(),
		Name:      name,
		StartDir:  startDir,
		CreatedAt: now,
		UpdatedAt: now,
		Actions:   make([]Action, 0),
	}
}

func (m *Manager) path(id string) string {
	return filepath.Join(m.journalDir, fmt.Sprintf("%s.json", id))
}
