package modifier

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/definition"
)

func writeStaged(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPassthroughWhenNoRuleMatches(t *testing.T) {
	dir := t.TempDir()
	writeStaged(t, dir, "aaa", "a")

	e := New(dir, nil)
	out, err := e.Apply(context.Background(), []action.Action{{Path: "aaa", Kind: action.Add}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 1 || out[0].Path != "aaa" || out[0].Kind != action.Add {
		t.Errorf("out = %v", out)
	}
}

func TestEmptyFilterSuppressesAction(t *testing.T) {
	dir := t.TempDir()
	writeStaged(t, dir, "bbb", "b")

	rules := []definition.Modifier{{Regex: regexp.MustCompile("^bbb$"), Filter: "", HasFilter: true}}
	e := New(dir, rules)
	out, err := e.Apply(context.Background(), []action.Action{{Path: "bbb", Kind: action.Add}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 1 || out[0].Kind != action.Nop {
		t.Errorf("out = %v, want single NOP", out)
	}
}

func TestRenameAndChmod(t *testing.T) {
	dir := t.TempDir()
	writeStaged(t, dir, "aaa", "a")

	rules := []definition.Modifier{{
		Regex: regexp.MustCompile(`^(...)$`), Rename: `r_\1`, HasRename: true,
		Chmod: 0o642, HasChmod: true,
	}}
	e := New(dir, rules)
	out, err := e.Apply(context.Background(), []action.Action{{Path: "aaa", Kind: action.Add}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 1 || out[0].Path != "r_aaa" {
		t.Fatalf("out = %v, want path r_aaa", out)
	}

	info, err := os.Stat(filepath.Join(dir, "r_aaa"))
	if err != nil {
		t.Fatalf("stat renamed file: %v", err)
	}
	if info.Mode().Perm() != 0o642 {
		t.Errorf("mode = %o, want 642", info.Mode().Perm())
	}
}

func TestUsedSetPreventsReprocessing(t *testing.T) {
	dir := t.TempDir()
	writeStaged(t, dir, "aaa", "a")

	e := New(dir, nil)
	if _, err := e.Apply(context.Background(), []action.Action{{Path: "aaa", Kind: action.Add}}); err != nil {
		t.Fatal(err)
	}
	out, err := e.Apply(context.Background(), []action.Action{{Path: "aaa", Kind: action.Add}})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("expected already-used path to be suppressed, got %v", out)
	}
}

func TestLinkExpandsAdditionalPaths(t *testing.T) {
	dir := t.TempDir()
	writeStaged(t, dir, "main.js", "main")
	writeStaged(t, dir, "dep.js", "dep")

	rules := []definition.Modifier{{
		Regex: regexp.MustCompile(`^main\.js$`),
		Link:  "echo dep.js",
		HasLink: true,
	}}
	e := New(dir, rules)
	out, err := e.Apply(context.Background(), []action.Action{{Path: "main.js", Kind: action.Add}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("out = %v, want main.js + linked dep.js", out)
	}
}
