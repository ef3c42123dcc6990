// Package vcstracker implements the VCS change tracker on top of go-git,
// exporting a tree snapshot and a name-status diff between two revisions
// without shelling out to the git binary.
package vcstracker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/logger"
)

var vcsLog = logger.New("tracker:vcs")

// emptyTreeHash is git's well-known hash of the empty tree object, used when
// rev_from is absent so a first deploy diffs against "nothing" (§4.3 step 1).
const emptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// VCS is the go-git-backed change tracker.
type VCS struct{}

// New builds a VCS tracker. It currently takes no configurable options.
func New(_ map[string]string) *VCS {
	return &VCS{}
}

// Current returns the workspace's current HEAD commit hash, hex-encoded.
func (v *VCS) Current(_ context.Context, workspaceDir string) (any, error) {
	repo, err := git.PlainOpen(workspaceDir)
	if err != nil {
		return nil, fmt.Errorf("vcstracker: opening repository at %q: %w", workspaceDir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("vcstracker: resolving HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// Diff resolves from and to as git revisions, exports the tree at "to" into
// stagingDir, and returns a name-status diff mapped to Action values.
func (v *VCS) Diff(_ context.Context, workspaceDir, stagingDir string, from, to any) ([]action.Action, any, error) {
	repo, err := git.PlainOpen(workspaceDir)
	if err != nil {
		return nil, nil, fmt.Errorf("vcstracker: opening repository at %q: %w", workspaceDir, err)
	}

	fromRev, _ := from.(string)
	if fromRev == "" {
		fromRev = emptyTreeHash
	}
	toRev, _ := to.(string)
	if toRev == "" {
		return nil, nil, fmt.Errorf("vcstracker: rev_to must not be empty")
	}

	if fromRev == toRev {
		vcsLog.Print("workspace already at requested revision, nothing to diff")
		return nil, toRev, nil
	}

	fromTree, err := resolveTree(repo, fromRev)
	if err != nil {
		return nil, nil, fmt.Errorf("vcstracker: resolving rev_from %q: %w", fromRev, err)
	}
	toTree, err := resolveTree(repo, toRev)
	if err != nil {
		return nil, nil, fmt.Errorf("vcstracker: resolving rev_to %q: %w", toRev, err)
	}

	if err := exportTree(toTree, stagingDir); err != nil {
		return nil, nil, fmt.Errorf("vcstracker: exporting tree %q: %w", toRev, err)
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, nil, fmt.Errorf("vcstracker: diffing trees: %w", err)
	}

	var actions []action.Action
	for _, change := range changes {
		act, err := change.Action()
		if err != nil {
			return nil, nil, err
		}
		switch act {
		case merkletrie.Insert:
			actions = append(actions, action.Action{Path: change.To.Name, Kind: action.Add})
		case merkletrie.Delete:
			actions = append(actions, action.Action{Path: change.From.Name, Kind: action.Del})
		default: // Modify, and go-git's undetected renames (seen as a Modify on path rewrite)
			if change.To.Name != "" {
				actions = append(actions, action.Action{Path: change.To.Name, Kind: action.Add})
			}
			if change.From.Name != "" && change.From.Name != change.To.Name {
				actions = append(actions, action.Action{Path: change.From.Name, Kind: action.Del})
			}
		}
	}

	return actions, toRev, nil
}

func resolveTree(repo *git.Repository, rev string) (*object.Tree, error) {
	if rev == emptyTreeHash {
		return &object.Tree{}, nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		// rev might already name a tree directly.
		return repo.TreeObject(*hash)
	}
	return commit.Tree()
}

// exportTree writes every blob in tree to destDir, recreating its directory
// structure. An empty tree (no entries) simply writes nothing, which is what
// resolveTree's zero-value object.Tree{} for emptyTreeHash produces.
func exportTree(tree *object.Tree, destDir string) error {
	iter := tree.Files()
	defer iter.Close()

	return iter.ForEach(func(f *object.File) error {
		reader, err := f.Reader()
		if err != nil {
			return err
		}
		defer reader.Close()

		var buf bytes.Buffer
		if _, err := io.Copy(&buf, reader); err != nil {
			return err
		}

		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		mode, err := f.Mode.ToOSFileMode()
		if err != nil {
			mode = 0o644
		}
		return os.WriteFile(target, buf.Bytes(), mode.Perm())
	})
}
