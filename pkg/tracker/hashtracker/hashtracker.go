// Package hashtracker implements the content-hash change tracker: a
// recursive directory snapshot keyed by file digest, with no dependency on
// any version-control metadata.
package hashtracker

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"os"
	"path/filepath"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/fileutil"
	"github.com/r3c/creep/pkg/logger"
	"github.com/r3c/creep/pkg/pathutil"
)

var hashLog = logger.New("tracker:hash")

// Hash is the content-hash tracker. Its revision token is a nested
// map[string]any tree: a string leaf is a file's hex digest, a map leaf is a
// subdirectory.
type Hash struct {
	digest         string
	followSymlinks bool
}

// New builds a Hash tracker from the "digest" (md5, default) and
// "follow-symlinks" (false, default — Open Question resolved per
// original_source/creep/src/sources/hash.py) options.
func New(options map[string]string) *Hash {
	h := &Hash{digest: "md5"}
	if d, ok := options["digest"]; ok && d != "" {
		h.digest = d
	}
	if f, ok := options["follow-symlinks"]; ok {
		h.followSymlinks = f == "true" || f == "1"
	}
	return h
}

func (h *Hash) newDigest() (hash.Hash, error) {
	switch h.digest {
	case "md5", "":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("hashtracker: unknown digest %q", h.digest)
	}
}

func (h *Hash) digestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d, err := h.newDigest()
	if err != nil {
		return "", err
	}
	buf := make([]byte, 64*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			d.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

// Current walks workspaceDir and returns its content-hash tree.
func (h *Hash) Current(_ context.Context, workspaceDir string) (any, error) {
	return h.snapshot(workspaceDir)
}

func (h *Hash) snapshot(dir string) (map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tree := make(map[string]any, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		info, err := os.Lstat(path)
		if err != nil {
			return nil, err
		}
		if info.Mode()&os.ModeSymlink != 0 && !h.followSymlinks {
			continue
		}
		if entry.IsDir() {
			sub, err := h.snapshot(path)
			if err != nil {
				return nil, err
			}
			tree[entry.Name()] = sub
			continue
		}
		digest, err := h.digestFile(path)
		if err != nil {
			return nil, err
		}
		tree[entry.Name()] = digest
	}
	return tree, nil
}

// Diff compares workspaceDir against the "from" revision tree, copying every
// added or changed file's current bytes into stagingDir, and returns the
// ordered action list plus the newly computed revision token. The "to"
// parameter is accepted for interface symmetry with the VCS tracker but is
// not consulted: the hash tracker always diffs against the workspace's live,
// current state.
func (h *Hash) Diff(_ context.Context, workspaceDir, stagingDir string, from, _ any) ([]action.Action, any, error) {
	prev, _ := from.(map[string]any)

	var actions []action.Action
	next, err := h.diffDir(prev, workspaceDir, stagingDir, "", &actions)
	if err != nil {
		return nil, nil, err
	}

	hashLog.Debugf("diffed %d actions against workspace %q", len(actions), workspaceDir)
	return actions, next, nil
}

// diffDir implements the table in §4.3: for every live entry, classify
// against the corresponding prev entry (missing/file/dir); then for every
// prev entry with no corresponding live entry, emit deletions.
func (h *Hash) diffDir(prev map[string]any, liveDir, stagingDir, prefix string, actions *[]action.Action) (map[string]any, error) {
	entries, err := os.ReadDir(liveDir)
	if err != nil {
		return nil, err
	}

	next := make(map[string]any, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		livePath := filepath.Join(liveDir, name)
		relPath := pathutil.Join(prefix, name)

		info, err := os.Lstat(livePath)
		if err != nil {
			return nil, err
		}
		if info.Mode()&os.ModeSymlink != 0 && !h.followSymlinks {
			continue
		}
		seen[name] = true

		prevValue, hadPrev := prev[name]

		if entry.IsDir() {
			var prevSub map[string]any
			if hadPrev {
				if sub, ok := prevValue.(map[string]any); ok {
					prevSub = sub
				} else {
					// prev was a file, next is a dir: delete the old file, recurse as additions.
					*actions = append(*actions, action.Action{Path: relPath, Kind: action.Del})
				}
			}
			sub, err := h.diffDir(prevSub, livePath, stagingDir, relPath, actions)
			if err != nil {
				return nil, err
			}
			next[name] = sub
			continue
		}

		digest, err := h.digestFile(livePath)
		if err != nil {
			return nil, err
		}
		next[name] = digest

		switch {
		case !hadPrev:
			if err := h.stage(livePath, stagingDir, relPath); err != nil {
				return nil, err
			}
			*actions = append(*actions, action.Action{Path: relPath, Kind: action.Add})
		default:
			if prevDigest, ok := prevValue.(string); ok {
				if prevDigest != digest {
					if err := h.stage(livePath, stagingDir, relPath); err != nil {
						return nil, err
					}
					*actions = append(*actions, action.Action{Path: relPath, Kind: action.Add})
				}
			} else {
				// prev was a directory, next is a file: add the file, delete the old subtree.
				if err := h.stage(livePath, stagingDir, relPath); err != nil {
					return nil, err
				}
				*actions = append(*actions, action.Action{Path: relPath, Kind: action.Add})
				emitDeletions(prevValue, relPath, actions)
			}
		}
	}

	for name, prevValue := range prev {
		if seen[name] {
			continue
		}
		relPath := pathutil.Join(prefix, name)
		if sub, ok := prevValue.(map[string]any); ok {
			emitDeletions(sub, relPath, actions)
		} else {
			*actions = append(*actions, action.Action{Path: relPath, Kind: action.Del})
		}
	}

	return next, nil
}

func (h *Hash) stage(livePath, stagingDir, relPath string) error {
	target := filepath.Join(stagingDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return fileutil.CopyFile(livePath, target)
}

func emitDeletions(tree any, prefix string, actions *[]action.Action) {
	m, ok := tree.(map[string]any)
	if !ok {
		*actions = append(*actions, action.Action{Path: prefix, Kind: action.Del})
		return
	}
	for name, value := range m {
		emitDeletions(value, pathutil.Join(prefix, name), actions)
	}
}
