package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	out, flags := log.Writer(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_FallbackWithoutPath(t *testing.T) {
	restoreLogger(t)

	f, err := setupLogging("", io.Discard)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if f != nil {
		t.Error("Expected nil log file without a path")
		f.Close()
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLogging_WritesToFile(t *testing.T) {
	restoreLogger(t)

	path := filepath.Join(t.TempDir(), "logs", "minesim.log")
	f, err := setupLogging(path, io.Discard)
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if f == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer f.Close()

	log.Println("Test log message")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test log message") {
		t.Errorf("Log file content = %q", data)
	}
}
