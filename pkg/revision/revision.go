// Package revision persists the last-deployed state token for a location: a
// plain VCS revision string, or a nested content-hash tree for the hash
// tracker.
package revision

import (
	"encoding/json"
	"io"

	"github.com/tidwall/pretty"
)

// Revision maps a location name to the tracker-specific token deployed there
// last. Cascaded definitions accumulate one entry per location they touch in
// a single revision file, so restarting a partially-applied cascade can tell
// which locations already moved forward.
type Revision map[string]any

// Load reads a revision file. An empty reader (the common case for a brand
// new location with no prior deploy) yields an empty, non-nil Revision rather
// than an error.
func Load(r io.Reader) (Revision, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return Revision{}, nil
	}

	rev := Revision{}
	if err := json.Unmarshal(data, &rev); err != nil {
		return nil, err
	}
	return rev, nil
}

// Save writes rev as pretty-printed, key-sorted JSON. encoding/json already
// sorts map[string]any keys alphabetically when marshaling; pretty.Pretty
// reformats the resulting compact document with stable two-space indentation
// so revision files stay small, deterministic diffs in version control.
func Save(w io.Writer, rev Revision) error {
	compact, err := json.Marshal(rev)
	if err != nil {
		return err
	}
	formatted := pretty.Pretty(compact)
	_, err = w.Write(formatted)
	return err
}

// With returns a copy of rev with name set to token, leaving rev untouched.
// Used by the orchestrator to build the next revision without mutating the
// one it just read, so a failed save leaves the original on disk intact.
func (rev Revision) With(name string, token any) Revision {
	next := make(Revision, len(rev)+1)
	for k, v := range rev {
		next[k] = v
	}
	next[name] = token
	return next
}
