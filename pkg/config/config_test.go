package config

import "testing"

func TestReadFieldAlias(t *testing.T) {
	diags := &Diagnostics{}
	root, err := Parse("test.json", []byte(`{"remove_files": ["a"]}`), diags)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	field := root.ReadField("removeFiles", "remove_files")
	if !field.IsDefined() {
		t.Fatal("expected alias to resolve")
	}
	if len(diags.All()) != 1 || diags.All()[0].Severity != "warning" {
		t.Errorf("expected one deprecation warning, got %v", diags.All())
	}
}

func TestOrphanKeys(t *testing.T) {
	diags := &Diagnostics{}
	root, err := Parse("test.json", []byte(`{"known": 1, "typo": 2}`), diags)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	root.ReadField("known")
	orphans := root.OrphanKeys()
	if len(orphans) != 1 || orphans[0] != "typo" {
		t.Errorf("OrphanKeys = %v, want [typo]", orphans)
	}
}

func TestReadStringTypeMismatch(t *testing.T) {
	diags := &Diagnostics{}
	root, err := Parse("test.json", []byte(`{"name": 123}`), diags)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, err := root.ReadField("name").ReadString(""); err == nil {
		t.Error("expected type mismatch error")
	}
}

func TestGetIncludeShorthandString(t *testing.T) {
	diags := &Diagnostics{}
	root, err := Parse("test.json", []byte(`{"include": "other.json"}`), diags)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	includes, err := root.GetInclude()
	if err != nil {
		t.Fatalf("GetInclude: %v", err)
	}
	if len(includes) != 1 || includes[0] != "other.json" {
		t.Errorf("GetInclude = %v", includes)
	}
}

func TestPointerTracksPosition(t *testing.T) {
	diags := &Diagnostics{}
	root, err := Parse("test.json", []byte(`{"a": {"b": 1}}`), diags)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b := root.ReadField("a").ReadField("b")
	if b.Pointer() != "/a/b" {
		t.Errorf("Pointer = %q, want /a/b", b.Pointer())
	}
}
