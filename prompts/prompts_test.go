package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullSystem(t *testing.T) {
	sys := FullSystem()

	if !strings.HasPrefix(sys, "You are a senior customer support agent") {
		t.Error("system prompt should open with the support persona")
	}
	if !strings.Contains(sys, "--- PRODUCT DOCUMENTATION ---") {
		t.Error("system prompt should include the documentation divider")
	}
	if !strings.Contains(sys, "SMARTWIDGET PRODUCT DOCUMENTATION") {
		t.Error("system prompt should include the product docs")
	}

	// The docs are the whole point of the cacheable prefix; if they shrink
	// below a couple thousand tokens the cache write never pays for itself.
	if words := len(strings.Fields(sys)); words < 800 {
		t.Errorf("expected a substantial prefix, got only %d words", words)
	}
}

func TestLoadWorkload(t *testing.T) {
	w, err := LoadWorkload("support")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Name != "support" {
		t.Errorf("expected workload name 'support', got %q", w.Name)
	}
	if n := len(w.Questions); n != 5 {
		t.Errorf("expected 5 questions, got %d", n)
	}
	if w.System != FullSystem() {
		t.Error("embedded workload should inherit the full system prefix")
	}
	for i, q := range w.Questions {
		if q == "" {
			t.Errorf("question %d is empty", i)
		}
	}
}

func TestLoadWorkloadError(t *testing.T) {
	if _, err := LoadWorkload("non_existent"); err == nil {
		t.Error("expected error for non-existent workload")
	}
}

func TestReadWorkloadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "name: custom\nsystem: \"You are terse.\"\nquestions:\n  - \"One?\"\n  - \"Two?\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write workload file: %v", err)
	}

	w, err := ReadWorkloadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.System != "You are terse." {
		t.Errorf("expected the file's own system prompt, got %q", w.System)
	}
	if len(w.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(w.Questions))
	}
}

func TestReadWorkloadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("name: bad\nquestions: []\n"), 0644); err != nil {
		t.Fatalf("failed to write workload file: %v", err)
	}

	if _, err := ReadWorkloadFile(path); err == nil {
		t.Error("expected validation error for a workload without questions")
	}
}
