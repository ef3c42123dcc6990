package action

import (
	"testing"
)

func TestSortOrdersDeletesBeforeAdds(t *testing.T) {
	actions := []Action{
		{Path: "z.txt", Kind: Add},
		{Path: "a.txt", Kind: Del},
		{Path: "m.txt", Kind: Nop},
		{Path: "b.txt", Kind: Add},
		{Path: "c.txt", Kind: Del},
	}

	Sort(actions)

	want := []string{"a.txt", "c.txt", "b.txt", "z.txt", "m.txt"}
	for i, path := range want {
		if actions[i].Path != path {
			t.Fatalf("actions[%d].Path = %q, want %q (full order: %v)", i, actions[i].Path, path, actions)
		}
	}
}

func TestSortKeepsDuplicateActions(t *testing.T) {
	actions := []Action{
		{Path: "b.txt", Kind: Add},
		{Path: "b.txt", Kind: Add},
	}
	Sort(actions)
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
}

func TestDeployable(t *testing.T) {
	if !(Action{Kind: Add}).Deployable() {
		t.Error("Add should be deployable")
	}
	if !(Action{Kind: Del}).Deployable() {
		t.Error("Del should be deployable")
	}
	if (Action{Kind: Nop}).Deployable() {
		t.Error("Nop should not be deployable")
	}
	if (Action{Kind: Err}).Deployable() {
		t.Error("Err should not be deployable")
	}
}

func TestMarker(t *testing.T) {
	if Add.Marker() != "+" || Del.Marker() != "-" || Err.Marker() != "!" {
		t.Error("unexpected markers")
	}
}
