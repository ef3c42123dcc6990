package definition

import (
	"path/filepath"
	"strings"
)

// Origin is a workspace reference: a local directory, a local archive file,
// or an http(s) archive URL, optionally narrowed to a subdirectory once
// extracted. Classifying local references as a directory vs. an archive file
// happens at Source-acquisition time, not at parse time, since it requires a
// filesystem stat; Origin itself only resolves the raw reference to an
// absolute local path or a URL plus an optional subpath, skipping the
// original tool's file:///-synthesis hack (§9 design note).
type Origin struct {
	IsHTTP  bool
	Path    string // absolute local path, or an http(s) URL
	Subpath string // optional "#subpath" suffix
}

// ParseOrigin resolves raw (the Definition's "origin" field) relative to
// baseDir, the directory containing the owning definition file.
func ParseOrigin(raw, baseDir string) Origin {
	ref, subpath, _ := strings.Cut(raw, "#")

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return Origin{IsHTTP: true, Path: ref, Subpath: subpath}
	}

	path := strings.TrimPrefix(ref, "file://")
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return Origin{Path: filepath.Clean(path), Subpath: subpath}
}
