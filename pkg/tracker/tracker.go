// Package tracker defines the common change-tracker contract shared by the
// content-hash and VCS tracker implementations, plus a small factory that
// autodetects which one applies to a workspace when a Definition does not
// name one explicitly.
package tracker

import (
	"context"
	"fmt"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/fileutil"
	"github.com/r3c/creep/pkg/tracker/hashtracker"
	"github.com/r3c/creep/pkg/tracker/vcstracker"
	"path/filepath"
)

// Token is an opaque, tracker-specific revision marker: a string for the VCS
// tracker, a nested map for the hash tracker. It is never interpreted outside
// the tracker that produced it.
type Token = any

// Tracker computes the current revision of a workspace and the set of
// actions needed to move it from one revision to another.
type Tracker interface {
	Current(ctx context.Context, workspaceDir string) (Token, error)
	Diff(ctx context.Context, workspaceDir, stagingDir string, from, to Token) ([]action.Action, Token, error)
}

// New builds the tracker named by kind ("hash" or "vcs"), or autodetects one
// from workspaceDir when kind is empty: a ".git" directory selects the VCS
// tracker, anything else falls back to the hash tracker.
func New(kind, workspaceDir string, options map[string]string) (Tracker, error) {
	if kind == "" {
		kind = autodetect(workspaceDir)
	}

	switch kind {
	case "hash":
		return hashtracker.New(options), nil
	case "vcs":
		return vcstracker.New(options), nil
	default:
		return nil, fmt.Errorf("tracker: unknown kind %q", kind)
	}
}

func autodetect(workspaceDir string) string {
	if fileutil.DirExists(filepath.Join(workspaceDir, ".git")) {
		return "vcs"
	}
	return "hash"
}
