package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads path, parses it, and resolves its "include" chain depth-first:
// each included file is loaded in list order, with its own includes resolved
// before the next sibling, and merged underneath the including file (the
// including file's own keys win on conflict, then earlier includes win over
// later ones). A path already visited is skipped rather than
// re-merged, the same cycle-safety the teacher's import processor applies to
// its own worklist-driven include resolution.
func Load(path string, diags *Diagnostics) (Configuration, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Configuration{}, err
	}

	visited := map[string]bool{}
	return load(abs, diags, visited)
}

func load(abs string, diags *Diagnostics, visited map[string]bool) (Configuration, error) {
	if visited[abs] {
		return Configuration{}, nil
	}
	visited[abs] = true

	raw, err := os.ReadFile(abs)
	if err != nil {
		return Configuration{}, fmt.Errorf("reading %s: %w", abs, err)
	}

	root, err := Parse(abs, raw, diags)
	if err != nil {
		return Configuration{}, err
	}

	includes, err := root.GetInclude()
	if err != nil {
		return Configuration{}, err
	}

	merged, ok := root.value.(map[string]any)
	if !ok {
		return root, nil
	}

	dir := filepath.Dir(abs)
	queue := includes
	for len(queue) > 0 {
		rel := queue[0]
		queue = queue[1:]

		includedPath := rel
		if !filepath.IsAbs(includedPath) {
			includedPath = filepath.Join(dir, rel)
		}
		included, err := load(includedPath, diags, visited)
		if err != nil {
			return Configuration{}, err
		}
		includedObj, ok := included.value.(map[string]any)
		if !ok {
			continue
		}
		for key, value := range includedObj {
			if _, exists := merged[key]; !exists {
				merged[key] = value
			}
		}
	}

	return newConfiguration(abs, "", merged, diags), nil
}
