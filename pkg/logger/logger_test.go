package logger

import "testing"

func TestIndentedNesting(t *testing.T) {
	l := New("test:component")
	child := l.Indented()
	grandchild := child.Indented()

	if l.indent != 0 || child.indent != 1 || grandchild.indent != 2 {
		t.Errorf("indent levels = %d, %d, %d; want 0, 1, 2", l.indent, child.indent, grandchild.indent)
	}
	if child.component != l.component {
		t.Errorf("Indented() changed component: got %q, want %q", child.component, l.component)
	}
}

func TestSetLevelDoesNotPanic(t *testing.T) {
	defer SetLevel(LevelNormal)

	SetLevel(LevelQuiet)
	New("test").Print("suppressed at quiet")

	SetLevel(LevelVerbose)
	New("test").Debugf("shown at verbose: %d", 42)
}
