// Package modifier applies an ordered set of regex-matched rules to an
// incoming action stream, renaming, linking, rewriting, chmod-ing or
// filtering files in a staging directory before transmission.
package modifier

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/definition"
	"github.com/r3c/creep/pkg/fileutil"
	"github.com/r3c/creep/pkg/logger"
	"github.com/r3c/creep/pkg/modifier/quote"
	"github.com/r3c/creep/pkg/pathutil"
	"github.com/r3c/creep/pkg/process"
)

var modifierLog = logger.New("pkg:modifier")

// Engine runs a fixed set of ordered rules against a staging directory. One
// Engine is built per sync call and discarded with it; its `used` set is
// never shared across runs.
type Engine struct {
	stagingDir string
	rules      []definition.Modifier
	used       map[string]bool
}

// New builds an Engine bound to stagingDir and rules, in the order they
// should be tried against each incoming path's basename.
func New(stagingDir string, rules []definition.Modifier) *Engine {
	return &Engine{stagingDir: stagingDir, rules: rules, used: map[string]bool{}}
}

// Apply runs every action in order through the engine and returns the
// combined, possibly-expanded output. Output order preserves input order,
// with link-expanded paths inserted immediately after the action that
// produced them.
func (e *Engine) Apply(ctx context.Context, actions []action.Action) ([]action.Action, error) {
	var output []action.Action
	for _, in := range actions {
		produced, err := e.process(ctx, in.Path, in.Kind)
		if err != nil {
			return nil, err
		}
		output = append(output, produced...)
	}
	return output, nil
}

func (e *Engine) process(ctx context.Context, p string, kind action.Kind) ([]action.Action, error) {
	p = pathutil.Normalize(p)
	if e.used[p] {
		return nil, nil
	}
	e.used[p] = true

	rule, ok := e.match(p)
	if !ok {
		return []action.Action{{Path: p, Kind: kind}}, nil
	}

	current := p
	outKind := kind
	var linked []action.Action

	if rule.HasRename {
		renamed, err := e.rename(current, rule)
		if err != nil {
			return nil, err
		}
		modifierLog.Debugf("renamed %q -> %q", current, renamed)
		current = renamed
	}

	if outKind == action.Add && rule.HasLink {
		paths, failed, err := e.runListCommand(ctx, rule.Link, current)
		if err != nil {
			return nil, err
		}
		if failed {
			outKind = action.Err
		} else {
			for _, childPath := range paths {
				produced, err := e.process(ctx, childPath, action.Add)
				if err != nil {
					return nil, err
				}
				linked = append(linked, produced...)
			}
		}
	}

	if outKind == action.Add && rule.HasModify {
		failed, err := e.runModify(ctx, rule.Modify, current)
		if err != nil {
			return nil, err
		}
		if failed {
			outKind = action.Err
		}
	}

	if outKind == action.Add && rule.HasChmod {
		target := filepath.Join(e.stagingDir, filepath.FromSlash(current))
		if err := os.Chmod(target, rule.Chmod); err != nil {
			return nil, err
		}
	}

	if rule.HasFilter {
		if rule.Filter == "" {
			outKind = action.Nop
		} else {
			failed, err := e.runBool(ctx, rule.Filter, current)
			if err != nil {
				return nil, err
			}
			if failed {
				outKind = action.Nop
			}
		}
	}

	result := []action.Action{{Path: current, Kind: outKind}}
	return append(result, linked...), nil
}

func (e *Engine) match(p string) (definition.Modifier, bool) {
	base := path.Base(p)
	for _, rule := range e.rules {
		if rule.Matches(base) {
			return rule, true
		}
	}
	return definition.Modifier{}, false
}

var backrefPattern = regexp.MustCompile(`\\(\d)`)

// rename duplicates the staged file at its new basename (never moving it:
// a later link stage may still need the original path to resolve relative
// references) and returns the new logical path.
func (e *Engine) rename(p string, rule definition.Modifier) (string, error) {
	dir := path.Dir(p)
	base := path.Base(p)

	template := backrefPattern.ReplaceAllString(rule.Rename, `$$$1`)
	newBase := rule.Regex.ReplaceAllString(base, template)

	newPath := newBase
	if dir != "." {
		newPath = pathutil.Join(dir, newBase)
	}

	src := filepath.Join(e.stagingDir, filepath.FromSlash(p))
	dst := filepath.Join(e.stagingDir, filepath.FromSlash(newPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := fileutil.CopyFile(src, dst); err != nil {
		return "", err
	}
	return newPath, nil
}

func (e *Engine) substitute(template, p string) string {
	return strings.ReplaceAll(template, "{}", quote.Shell(p))
}

// runListCommand runs a link command and splits its stdout into one path per
// non-empty line.
func (e *Engine) runListCommand(ctx context.Context, template, p string) ([]string, bool, error) {
	command := e.substitute(template, p)
	result, err := process.Run(ctx, e.stagingDir, true, nil, command)
	if err != nil {
		return nil, false, err
	}
	if result.ExitCode != 0 {
		return nil, true, nil
	}

	var paths []string
	for _, line := range strings.Split(string(result.Stdout), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, false, nil
}

// runModify runs a modify command and overwrites the staged file with its
// stdout on success, leaving the file untouched on failure (§9: "the source
// overwrites only on success; preserve that behavior").
func (e *Engine) runModify(ctx context.Context, template, p string) (bool, error) {
	command := e.substitute(template, p)
	result, err := process.Run(ctx, e.stagingDir, true, nil, command)
	if err != nil {
		return false, err
	}
	if result.ExitCode != 0 {
		return true, nil
	}

	target := filepath.Join(e.stagingDir, filepath.FromSlash(p))
	if err := os.WriteFile(target, result.Stdout, 0o644); err != nil {
		return false, err
	}
	return false, nil
}

// runBool runs a filter command and reports whether it failed (non-zero).
func (e *Engine) runBool(ctx context.Context, template, p string) (bool, error) {
	command := e.substitute(template, p)
	result, err := process.Run(ctx, e.stagingDir, true, nil, command)
	if err != nil {
		return false, err
	}
	return result.ExitCode != 0, nil
}
