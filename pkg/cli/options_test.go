package cli

import "testing"

func TestForCascadeStripsExplicitListsAndBounds(t *testing.T) {
	opts := Options{
		Locations:     []string{"a", "b"},
		AppendFiles:   []string{"extra.txt"},
		RemoveFiles:   []string{"old.txt"},
		Base:          "/workspace",
		DefinitionRef: "/workspace/.creep.def",
		RevFrom:       "1",
		RevTo:         "2",
		Yes:           true,
	}

	cascaded := opts.forCascade()

	if len(cascaded.AppendFiles) != 0 {
		t.Errorf("AppendFiles = %v, want empty", cascaded.AppendFiles)
	}
	if len(cascaded.RemoveFiles) != 0 {
		t.Errorf("RemoveFiles = %v, want empty", cascaded.RemoveFiles)
	}
	if cascaded.RevFrom != "" || cascaded.RevTo != "" {
		t.Errorf("rev bounds = (%q, %q), want empty", cascaded.RevFrom, cascaded.RevTo)
	}
	if cascaded.Base != "" || cascaded.DefinitionRef != "" {
		t.Errorf("Base/DefinitionRef leaked into cascade: %q %q", cascaded.Base, cascaded.DefinitionRef)
	}
	if len(cascaded.Locations) != 2 {
		t.Errorf("Locations = %v, want preserved", cascaded.Locations)
	}
	if !cascaded.Yes {
		t.Error("Yes should be preserved into cascade")
	}
}
