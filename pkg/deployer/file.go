package deployer

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/fileutil"
)

// File is the local-filesystem deployer: ADDs are copied in, DELs removed,
// relative to the connection URL's path.
type File struct {
	root string
}

// NewFile builds a File deployer rooted at u's path.
func NewFile(u *url.URL) *File {
	root := u.Path
	if root == "" {
		root = u.Opaque
	}
	return &File{root: root}
}

// Read returns the requested file's bytes, StatusEmpty if it is simply
// absent, or StatusUnreachable if the destination root itself doesn't exist.
func (f *File) Read(_ context.Context, relativePath string) ([]byte, ReadStatus, error) {
	if !fileutil.DirExists(f.root) {
		return nil, StatusUnreachable, nil
	}

	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(relativePath)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, StatusEmpty, nil
	}
	if err != nil {
		return nil, StatusUnreachable, err
	}
	return data, StatusFound, nil
}

// Send copies every ADD action's staged bytes into the destination,
// creating parent directories as needed, and removes every DEL action's
// target.
func (f *File) Send(_ context.Context, stagingDir string, actions []action.Action) error {
	for _, a := range actions {
		target := filepath.Join(f.root, filepath.FromSlash(a.Path))

		switch a.Kind {
		case action.Add:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			src := filepath.Join(stagingDir, filepath.FromSlash(a.Path))
			if err := fileutil.CopyFile(src, target); err != nil {
				return err
			}
		case action.Del:
			if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}
	}
	return nil
}
