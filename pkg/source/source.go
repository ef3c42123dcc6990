// Package source materializes a workspace reference (a local directory, a
// local archive file, or a downloaded http(s) archive) to a usable local
// directory for the duration of one run, with guaranteed LIFO cleanup.
package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/r3c/creep/pkg/definition"
	"github.com/r3c/creep/pkg/fileutil"
	"github.com/r3c/creep/pkg/logger"
)

var sourceLog = logger.New("pkg:source")

// Workspace is a materialized, usable directory plus its release function.
type Workspace struct {
	Dir     string
	cleanup []func() error
}

// Close runs every registered cleanup callback in LIFO order, as required
// even when an earlier step in Acquire already failed and is propagating.
func (w *Workspace) Close() error {
	var firstErr error
	for i := len(w.cleanup) - 1; i >= 0; i-- {
		if err := w.cleanup[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.cleanup = nil
	return firstErr
}

func (w *Workspace) defer_(fn func() error) {
	w.cleanup = append(w.cleanup, fn)
}

// Acquire resolves origin to a local directory. On error, any partial
// cleanup already registered is run before the error is returned.
func Acquire(origin definition.Origin) (*Workspace, error) {
	w := &Workspace{}

	dir, err := acquire(origin, w)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	w.Dir = dir
	return w, nil
}

func acquire(origin definition.Origin, w *Workspace) (string, error) {
	if origin.IsHTTP {
		return acquireHTTP(origin, w)
	}
	return acquireLocal(origin, w)
}

func acquireLocal(origin definition.Origin, w *Workspace) (string, error) {
	switch {
	case fileutil.DirExists(origin.Path):
		if origin.Subpath != "" {
			return filepath.Join(origin.Path, origin.Subpath), nil
		}
		return origin.Path, nil

	case fileutil.FileExists(origin.Path):
		dir, err := os.MkdirTemp("", "creep-source-")
		if err != nil {
			return "", err
		}
		w.defer_(func() error { return fileutil.SafeRemoveAll(dir) })

		sourceLog.Debugf("extracting local archive %q", origin.Path)
		if err := extract(origin.Path, dir); err != nil {
			return "", err
		}
		if origin.Subpath != "" {
			return filepath.Join(dir, origin.Subpath), nil
		}
		return dir, nil

	default:
		return "", fmt.Errorf("source: %q is neither a directory nor a file", origin.Path)
	}
}

func acquireHTTP(origin definition.Origin, w *Workspace) (string, error) {
	sourceLog.Debugf("downloading %q", origin.Path)

	resp, err := http.Get(origin.Path)
	if err != nil {
		return "", fmt.Errorf("source: downloading %q: %w", origin.Path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("source: downloading %q: HTTP %d", origin.Path, resp.StatusCode)
	}

	// Preserve the URL's file extension so extract() can sniff the format.
	ext := filepath.Ext(origin.Path)
	if lower := strings.ToLower(origin.Path); strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tar.bz2") {
		ext = ".tar" + ext
	}
	tmp, err := os.CreateTemp("", "creep-download-*"+ext)
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	w.defer_(func() error { return os.Remove(tmpPath) })

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	dir, err := os.MkdirTemp("", "creep-source-")
	if err != nil {
		return "", err
	}
	w.defer_(func() error { return fileutil.SafeRemoveAll(dir) })

	if err := extract(tmpPath, dir); err != nil {
		return "", err
	}
	if origin.Subpath != "" {
		return filepath.Join(dir, origin.Subpath), nil
	}
	return dir, nil
}
