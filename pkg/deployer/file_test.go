package deployer

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/r3c/creep/pkg/action"
)

func TestFileSendCopiesAndDeletes(t *testing.T) {
	staging := t.TempDir()
	if err := os.WriteFile(filepath.Join(staging, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := t.TempDir()
	if err := os.WriteFile(filepath.Join(target, "old.txt"), []byte("bye"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFile(&url.URL{Path: target})
	err := f.Send(context.Background(), staging, []action.Action{
		{Path: "a.txt", Kind: action.Add},
		{Path: "old.txt", Kind: action.Del},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(target, "a.txt"))
	if err != nil || string(content) != "hello" {
		t.Errorf("a.txt content = %q, err = %v", content, err)
	}
	if _, err := os.Stat(filepath.Join(target, "old.txt")); !os.IsNotExist(err) {
		t.Error("old.txt should have been deleted")
	}
}

func TestFileReadEmptyVsUnreachable(t *testing.T) {
	target := t.TempDir()
	f := NewFile(&url.URL{Path: target})

	_, status, err := f.Read(context.Background(), "missing.txt")
	if err != nil || status != StatusEmpty {
		t.Errorf("Read(missing) = status %v, err %v", status, err)
	}

	gone := NewFile(&url.URL{Path: filepath.Join(target, "does-not-exist")})
	_, status, _ = gone.Read(context.Background(), "anything")
	if status != StatusUnreachable {
		t.Errorf("Read(unreachable root) = status %v, want StatusUnreachable", status)
	}
}
