package vcstracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepoWithFile(t *testing.T, name, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sig := &object.Signature{Name: "test", Email: "test@example.com"}
	hash, err := wt.Commit("initial", &git.CommitOptions{Author: sig})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return dir, hash.String()
}

func TestCurrentReturnsHead(t *testing.T) {
	dir, hash := initRepoWithFile(t, "a.txt", "hello")

	v := New(nil)
	current, err := v.Current(context.Background(), dir)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current != hash {
		t.Errorf("Current = %v, want %v", current, hash)
	}
}

func TestDiffFromEmptyAddsFile(t *testing.T) {
	dir, hash := initRepoWithFile(t, "a.txt", "hello")

	v := New(nil)
	staging := t.TempDir()
	actions, token, err := v.Diff(context.Background(), dir, staging, "", hash)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if token != hash {
		t.Errorf("token = %v, want %v", token, hash)
	}
	if len(actions) != 1 || actions[0].Path != "a.txt" {
		t.Errorf("actions = %v, want single ADD of a.txt", actions)
	}

	content, err := os.ReadFile(filepath.Join(staging, "a.txt"))
	if err != nil {
		t.Fatalf("reading staged file: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("staged content = %q, want %q", content, "hello")
	}
}
