package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newQuietLogger(t *testing.T, dir string, level LogLevel) *Logger {
	t.Helper()
	logger, err := NewLogger(dir, level)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.SetConsole(nil)
	t.Cleanup(func() { logger.Close() })
	return logger
}

// readLog returns the contents of the single file-manager_*.log in dir.
func readLog(t *testing.T, dir string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "file-manager_*.log"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected one file-manager log in %s, found %d", dir, len(matches))
	}
	content, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestNewLogger_CreatesDirectoryAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "log", "dir")

	logger := newQuietLogger(t, dir, INFO)

	if logger.GetLogDir() != dir {
		t.Errorf("Expected logDir '%s', got '%s'", dir, logger.GetLogDir())
	}
	if logger.file == nil {
		t.Fatal("Expected file to be opened, got nil")
	}
	readLog(t, dir)
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger := newQuietLogger(t, dir, WARN)

	logger.Debug("debug message")
	logger.Info("info message %d", 1)
	logger.Warn("warn message %d", 2)
	logger.Error("error message")

	content := readLog(t, dir)
	for _, unwanted := range []string{"debug message", "info message"} {
		if strings.Contains(content, unwanted) {
			t.Errorf("Expected %q to be filtered out", unwanted)
		}
	}
	for _, wanted := range []string{"WARN: warn message 2", "ERROR: error message"} {
		if !strings.Contains(content, wanted) {
			t.Errorf("Expected log to contain %q, got:\n%s", wanted, content)
		}
	}
}

func TestLogger_Close(t *testing.T) {
	logger, err := NewLogger(t.TempDir(), INFO)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if logger.file != nil {
		t.Error("Expected file to be nil after Close()")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second Close() should not error, got: %v", err)
	}

	// Writing after Close is dropped.
	logger.SetConsole(nil)
	logger.Error("after close")
}

func TestPackageLevelFunctions(t *testing.T) {
	defaultLogger = nil
	Info("before init")
	if err := Close(); err != nil {
		t.Errorf("Close() without Init should not error, got: %v", err)
	}

	dir := t.TempDir()
	if err := Init(dir, DEBUG); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer func() {
		Close()
		defaultLogger = nil
	}()
	SetConsole(nil)

	Debug("debug via package")
	Error("error via package")

	content := readLog(t, dir)
	if !strings.Contains(content, "DEBUG: debug via package") || !strings.Contains(content, "ERROR: error via package") {
		t.Errorf("Expected package-level messages in log, got:\n%s", content)
	}
	if strings.Contains(content, "before init") {
		t.Error("Expected message logged before Init to be dropped")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		" warn ":  WARN,
		"warning": WARN,
		"error":   ERROR,
	}
	for input, want := range cases {
		got, ok := ParseLevel(input)
		if !ok {
			t.Errorf("ParseLevel(%q) reported unknown level", input)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}

	if got, ok := ParseLevel("verbose"); ok || got != INFO {
		t.Errorf("Expected unknown level to fall back to INFO, got %v (ok=%v)", got, ok)
	}
}

func TestLogger_ConsoleEcho(t *testing.T) {
	logger := newQuietLogger(t, t.TempDir(), DEBUG)

	var console bytes.Buffer
	logger.SetConsole(&console)

	logger.Info("quiet message")
	logger.Warn("loud message")

	output := console.String()
	if strings.Contains(output, "quiet message") {
		t.Error("Expected INFO not to be echoed to console")
	}
	if !strings.Contains(output, "WARN: loud message") {
		t.Errorf("Expected WARN to be echoed to console, got %q", output)
	}

	console.Reset()
	logger.SetConsole(nil)
	logger.Error("silenced")
	if console.Len() != 0 {
		t.Errorf("Expected no console output after SetConsole(nil), got %q", console.String())
	}
}

func TestLogger_LatestSymlink(t *testing.T) {
	dir := t.TempDir()
	newQuietLogger(t, dir, INFO)

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	if err != nil {
		t.Skipf("symlink not available: %v", err)
	}
	if !strings.HasPrefix(target, "file-manager_") {
		t.Errorf("Expected latest.log to point at a file-manager log, got %s", target)
	}
}
