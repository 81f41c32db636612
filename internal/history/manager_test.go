package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mainbong/file_manager/internal/filesystem"
	"github.com/mainbong/file_manager/internal/workdir"
)

func TestNewManager(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	journalDir := "/test/journal"

	manager, err := NewManagerWithFS(journalDir, "/home/user", mockFS)
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}

	if manager.journalDir != journalDir {
		t.Errorf("Expected journalDir '%s', got '%s'", journalDir, manager.journalDir)
	}
	if !mockFS.Exists(journalDir) {
		t.Error("Expected journal directory to be created")
	}

	current := manager.Current()
	if current == nil {
		t.Fatal("Expected current journal to be initialized, got nil")
	}
	if current.Name != "default" {
		t.Errorf("Expected journal name 'default', got '%s'", current.Name)
	}
	if current.StartDir != "/home/user" {
		t.Errorf("Expected StartDir '/home/user', got '%s'", current.StartDir)
	}
	if current.ID == "" {
		t.Error("Expected journal ID to be set")
	}
}

func TestRecord(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	manager, _ := NewManagerWithFS("/test/journal", "/work", mockFS)

	outcome := workdir.Outcome{
		Op:      workdir.OpCopy,
		Kind:    workdir.Success,
		Name:    "a.txt",
		Message: "File 'a.txt' copied to folder 'backup'.",
	}

	action := manager.Record("/work", outcome, "a.txt", "backup")

	actions := manager.Actions()
	if len(actions) != 1 {
		t.Fatalf("Expected 1 action, got %d", len(actions))
	}
	if actions[0].ID != action.ID {
		t.Error("Expected Record to return the stored action")
	}
	if action.Op != "copy" {
		t.Errorf("Expected op 'copy', got '%s'", action.Op)
	}
	if action.Kind != "success" {
		t.Errorf("Expected kind 'success', got '%s'", action.Kind)
	}
	if action.Dir != "/work" {
		t.Errorf("Expected dir '/work', got '%s'", action.Dir)
	}
	if len(action.Args) != 2 || action.Args[0] != "a.txt" || action.Args[1] != "backup" {
		t.Errorf("Expected args [a.txt backup], got %v", action.Args)
	}
	if action.Message != outcome.Message {
		t.Errorf("Expected message '%s', got '%s'", outcome.Message, action.Message)
	}
}

func TestRecord_UniqueIDs(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	manager, _ := NewManagerWithFS("/test/journal", "/work", mockFS)

	first := manager.Record("/work", workdir.Outcome{Op: workdir.OpUp, Kind: workdir.AtRoot})
	second := manager.Record("/work", workdir.Outcome{Op: workdir.OpUp, Kind: workdir.AtRoot})

	if first.ID == second.ID {
		t.Error("Expected distinct action IDs")
	}
}

func TestJournal_Failures(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	manager, _ := NewManagerWithFS("/test/journal", "/work", mockFS)

	manager.Record("/work", workdir.Outcome{Op: workdir.OpCreateFolder, Kind: workdir.Success}, "a")
	manager.Record("/work", workdir.Outcome{Op: workdir.OpCreateFolder, Kind: workdir.AlreadyExists}, "a")
	manager.Record("/work", workdir.Outcome{Op: workdir.OpReadFile, Kind: workdir.Failure}, "b")

	if got := manager.Current().Failures(); got != 2 {
		t.Errorf("Expected 2 failures, got %d", got)
	}
}

func TestSave(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	journalDir := "/test/journal"
	manager, _ := NewManagerWithFS(journalDir, "/work", mockFS)

	manager.Record("/work", workdir.Outcome{Op: workdir.OpCreateFile, Kind: workdir.Success}, "notes.txt")

	if err := manager.Save("test-journal"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	journalFile := filepath.Join(journalDir, manager.Current().ID+".json")
	savedData := mockFS.GetFile(journalFile)
	if len(savedData) == 0 {
		t.Fatal("Expected journal to be saved, but file is empty")
	}

	var journal Journal
	if err := json.Unmarshal(savedData, &journal); err != nil {
		t.Fatalf("Saved journal is not valid JSON: %v", err)
	}
	if journal.Name != "test-journal" {
		t.Errorf("Expected journal name 'test-journal', got '%s'", journal.Name)
	}
	if len(journal.Actions) != 1 {
		t.Errorf("Expected 1 action, got %d", len(journal.Actions))
	}
}

func TestSave_EmptyName(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	manager, _ := NewManagerWithFS("/test/journal", "/work", mockFS)

	originalName := manager.Current().Name
	if err := manager.Save(""); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if manager.Current().Name != originalName {
		t.Errorf("Expected journal name to remain '%s', got '%s'", originalName, manager.Current().Name)
	}
}

func TestSave_WriteError(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	journalDir := "/test/journal"
	manager, _ := NewManagerWithFS(journalDir, "/work", mockFS)

	journalFile := filepath.Join(journalDir, manager.Current().ID+".json")
	mockFS.SetWriteError(journalFile, os.ErrPermission)

	if err := manager.Save("test"); err == nil {
		t.Error("Expected error for write failure, got nil")
	}
}

func TestLoad(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	journalDir := "/test/journal"
	manager, _ := NewManagerWithFS(journalDir, "/work", mockFS)

	manager.Record("/work", workdir.Outcome{Op: workdir.OpCreateFolder, Kind: workdir.Success}, "docs")
	manager.Record("/work/docs", workdir.Outcome{Op: workdir.OpEnter, Kind: workdir.Success}, "docs")
	id := manager.Current().ID
	if err := manager.Save("saved"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	other, _ := NewManagerWithFS(journalDir, "/elsewhere", mockFS)
	journal, err := other.Load(id)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if journal.ID != id {
		t.Errorf("Expected journal ID '%s', got '%s'", id, journal.ID)
	}
	if journal.Name != "saved" {
		t.Errorf("Expected journal name 'saved', got '%s'", journal.Name)
	}
	if journal.StartDir != "/work" {
		t.Errorf("Expected StartDir '/work', got '%s'", journal.StartDir)
	}
	if len(journal.Actions) != 2 {
		t.Errorf("Expected 2 actions, got %d", len(journal.Actions))
	}
	if other.Current().ID == id {
		t.Error("Expected Load not to replace the current journal")
	}
}

func TestLoad_NotFound(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	manager, _ := NewManagerWithFS("/test/journal", "/work", mockFS)

	if _, err := manager.Load("nonexistent"); err == nil {
		t.Error("Expected error for nonexistent journal, got nil")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	journalDir := "/test/journal"
	mockFS.AddFile(filepath.Join(journalDir, "broken.json"), []byte("{ invalid json }"), 0644)

	manager, _ := NewManagerWithFS(journalDir, "/work", mockFS)
	if _, err := manager.Load("broken"); err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
}

func TestList(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	journalDir := "/test/journal"
	manager, _ := NewManagerWithFS(journalDir, "/work", mockFS)

	manager.Record("/work", workdir.Outcome{Op: workdir.OpList, Kind: workdir.Success})
	manager.Save("first")
	firstID := manager.Current().ID

	time.Sleep(time.Millisecond)
	manager.New("second", "/work")
	manager.Record("/work", workdir.Outcome{Op: workdir.OpUp, Kind: workdir.Success})
	manager.Save("second")
	secondID := manager.Current().ID

	mockFS.AddFile(filepath.Join(journalDir, "junk.json"), []byte("not json"), 0644)
	mockFS.AddFile(filepath.Join(journalDir, "notes.txt"), []byte("ignored"), 0644)

	journals, err := manager.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(journals) != 2 {
		t.Fatalf("Expected 2 journals, got %d", len(journals))
	}
	if journals[0].ID != secondID || journals[1].ID != firstID {
		t.Errorf("Expected newest journal first, got %s then %s", journals[0].ID, journals[1].ID)
	}
}

func TestList_Empty(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	manager, _ := NewManagerWithFS("/test/journal", "/work", mockFS)

	journals, err := manager.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(journals) != 0 {
		t.Errorf("Expected 0 journals, got %d", len(journals))
	}
}

func TestNew(t *testing.T) {
	mockFS := filesystem.NewMockFileSystem()
	manager, _ := NewManagerWithFS("/test/journal", "/work", mockFS)

	originalID := manager.Current().ID
	manager.Record("/work", workdir.Outcome{Op: workdir.OpUp, Kind: workdir.Success})

	manager.New("new-journal", "/other")

	if manager.Current().ID == originalID {
		t.Error("Expected new journal to have different ID")
	}
	if manager.Current().Name != "new-journal" {
		t.Errorf("Expected journal name 'new-journal', got '%s'", manager.Current().Name)
	}
	if len(manager.Actions()) != 0 {
		t.Errorf("Expected 0 actions in new journal, got %d", len(manager.Actions()))
	}
}
