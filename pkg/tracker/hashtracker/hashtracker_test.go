package hashtracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/r3c/creep/pkg/action"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFirstDiffAddsEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "a")
	writeFile(t, filepath.Join(dir, "sub", "b"), "b")

	h := New(nil)
	staging := t.TempDir()
	actions, token, err := h.Diff(context.Background(), dir, staging, nil, nil)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("actions = %v, want 2 ADDs", actions)
	}
	for _, a := range actions {
		if a.Kind != action.Add {
			t.Errorf("action %v should be ADD", a)
		}
	}
	if token == nil {
		t.Error("expected a non-nil token")
	}
}

func TestSecondDiffIsEmptyWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "a")

	h := New(nil)
	staging1 := t.TempDir()
	_, token, err := h.Diff(context.Background(), dir, staging1, nil, nil)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	staging2 := t.TempDir()
	actions, _, err := h.Diff(context.Background(), dir, staging2, token, nil)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(actions) != 0 {
		t.Errorf("expected idempotent second diff, got %v", actions)
	}
}

func TestDiffDetectsContentChange(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "a")

	h := New(nil)
	_, token, err := h.Diff(context.Background(), dir, t.TempDir(), nil, nil)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	writeFile(t, filepath.Join(dir, "a"), "changed")
	actions, _, err := h.Diff(context.Background(), dir, t.TempDir(), token, nil)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(actions) != 1 || actions[0].Kind != action.Add || actions[0].Path != "a" {
		t.Errorf("actions = %v, want single ADD of a", actions)
	}
}

func TestDiffDetectsDeletion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a"), "a")
	writeFile(t, filepath.Join(dir, "b"), "b")

	h := New(nil)
	_, token, err := h.Diff(context.Background(), dir, t.TempDir(), nil, nil)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "b")); err != nil {
		t.Fatal(err)
	}
	actions, _, err := h.Diff(context.Background(), dir, t.TempDir(), token, nil)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(actions) != 1 || actions[0].Kind != action.Del || actions[0].Path != "b" {
		t.Errorf("actions = %v, want single DEL of b", actions)
	}
}
