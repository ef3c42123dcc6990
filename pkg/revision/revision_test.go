package revision

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadEmptyReaderYieldsEmptyRevision(t *testing.T) {
	rev, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rev) != 0 {
		t.Errorf("expected empty revision, got %v", rev)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	rev := Revision{"prod": "abc123", "staging": map[string]any{"file.txt": "deadbeef"}}

	var buf bytes.Buffer
	if err := Save(&buf, rev); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded["prod"] != "abc123" {
		t.Errorf("prod = %v, want abc123", loaded["prod"])
	}
}

func TestSaveIsSortedAndPretty(t *testing.T) {
	rev := Revision{"zeta": "1", "alpha": "2"}
	var buf bytes.Buffer
	if err := Save(&buf, rev); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "alpha") > strings.Index(out, "zeta") {
		t.Errorf("expected sorted keys, got:\n%s", out)
	}
	if !strings.Contains(out, "\n") {
		t.Error("expected pretty-printed (multi-line) output")
	}
}

func TestWithDoesNotMutateOriginal(t *testing.T) {
	original := Revision{"a": "1"}
	updated := original.With("b", "2")

	if _, ok := original["b"]; ok {
		t.Error("With mutated the original revision")
	}
	if updated["a"] != "1" || updated["b"] != "2" {
		t.Errorf("updated = %v", updated)
	}
}
