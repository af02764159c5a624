package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, err := New(path, "debug")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debug("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("expected message in log, got %s", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "a.log"), "loud"); err == nil {
		t.Fatalf("expected error for bad level")
	}
	if _, err := New("", "loud"); err == nil {
		t.Fatalf("expected error for bad level without a log file")
	}
}

func TestNewEmptyPathIsNop(t *testing.T) {
	log, err := New("", "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("dropped")
}
