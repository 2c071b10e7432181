package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	t.Cleanup(func() { _ = Close() })

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after Init()")
	}

	want := filepath.Join(configDir, "logs", "sportjournal.log")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	Info("entry added", "id", "e1")
	Debug("suppressed outside debug mode")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "entry added") {
		t.Errorf("log file = %q, want it to contain %q", data, "entry added")
	}
	if strings.Contains(string(data), "suppressed") {
		t.Errorf("log file contains a debug line outside debug mode: %q", data)
	}
}

func TestInitDebugMode(t *testing.T) {
	t.Cleanup(func() { _ = Close() })

	if err := Init(Config{Debug: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Debug("debug line")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "debug line") {
		t.Errorf("log file = %q, want it to contain %q", data, "debug line")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	_ = Close()

	// must not panic
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")

	if got := Path(); got != "" {
		t.Errorf("Path() = %q, want empty before Init()", got)
	}
}
