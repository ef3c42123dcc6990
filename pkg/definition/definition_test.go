package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/r3c/creep/pkg/config"
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

func TestLoadSimpleDefinition(t *testing.T) {
	dir := t.TempDir()
	defPath := filepath.Join(dir, ".creep.def")
	writeFile(t, defPath, `{
		"origin": "src",
		"environment": {"default": {"connection": "file:///tmp/target"}},
		"modifiers": [{"regex": "^bbb$", "filter": ""}]
	}`)

	diags := &config.Diagnostics{}
	def, err := Load(defPath, diags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if def.Origin.Path != filepath.Join(dir, "src") {
		t.Errorf("Origin.Path = %q", def.Origin.Path)
	}
	if loc, ok := def.Environment["default"]; !ok || loc.Connection != "file:///tmp/target" {
		t.Errorf("Environment[default] = %+v", loc)
	}
	// Self-ignore modifier plus the explicit filter modifier.
	if len(def.Modifiers) != 2 {
		t.Errorf("len(Modifiers) = %d, want 2", len(def.Modifiers))
	}
	foundSelfIgnore := false
	for _, m := range def.Modifiers {
		if m.Matches(".creep.def") {
			foundSelfIgnore = true
		}
	}
	if !foundSelfIgnore {
		t.Error("expected an auto-generated self-ignore modifier")
	}
}

func TestLoadInlineDefinition(t *testing.T) {
	diags := &config.Diagnostics{}
	def, err := LoadRef(`{"origin": "."}`, t.TempDir(), diags)
	if err != nil {
		t.Fatalf("LoadRef: %v", err)
	}
	if def.Path != "" {
		t.Errorf("Path = %q, want empty for inline definition", def.Path)
	}
}

func TestEnvironmentFileReference(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".creep.env")
	writeFile(t, envPath, `{"default": {"connection": "file:///tmp/target"}}`)
	defPath := filepath.Join(dir, ".creep.def")
	writeFile(t, defPath, `{"environment": ".creep.env"}`)

	diags := &config.Diagnostics{}
	def, err := Load(defPath, diags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := def.Environment["default"]; !ok {
		t.Errorf("expected default location loaded from referenced env file")
	}
}
