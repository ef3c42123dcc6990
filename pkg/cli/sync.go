package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/console"
	"github.com/r3c/creep/pkg/definition"
	"github.com/r3c/creep/pkg/deployer"
	"github.com/r3c/creep/pkg/fileutil"
	"github.com/r3c/creep/pkg/modifier"
	"github.com/r3c/creep/pkg/pathutil"
	"github.com/r3c/creep/pkg/revision"
	"github.com/r3c/creep/pkg/source"
	"github.com/r3c/creep/pkg/tracker"
	"github.com/r3c/creep/pkg/tracker/vcstracker"
)

// syncLocation implements §4.6's sync() for a single named location: build
// the deployer and tracker, compute the action list, apply modifiers,
// preview, confirm, send, and persist the revision.
func syncLocation(ctx context.Context, def *definition.Definition, loc definition.EnvironmentLocation, name string, opts Options) error {
	baseDir := definitionBaseDir(def)

	ws, err := source.Acquire(def.Origin)
	if err != nil {
		return fmt.Errorf("location %q: acquiring source: %w", name, err)
	}
	defer ws.Close()

	trk, err := tracker.New(def.Tracker, ws.Dir, def.Options)
	if err != nil {
		return fmt.Errorf("location %q: building tracker: %w", name, err)
	}

	dep, err := deployer.New(loc.Connection, loc.Options)
	if err != nil {
		return fmt.Errorf("location %q: building deployer: %w", name, err)
	}

	rev, status, err := readRevision(ctx, dep, loc, baseDir)
	if err != nil {
		return fmt.Errorf("location %q: reading state: %w", name, err)
	}
	if status == deployer.StatusUnreachable {
		return fmt.Errorf("location %q: destination is unreachable", name)
	}

	// revFromToken carries the tracker's own token type verbatim (a string
	// for the VCS tracker, a nested map for the hash tracker): an explicit
	// --rev-from always wins as a string override, otherwise the raw value
	// previously stored for this location is reused untouched so a hash
	// tracker's map token survives the round trip instead of being dropped
	// by a string type assertion.
	var revFromToken tracker.Token
	haveRevFrom := false
	if opts.RevFrom != "" {
		revFromToken = opts.RevFrom
		haveRevFrom = true
	} else if token, ok := rev[name]; ok {
		revFromToken = token
		haveRevFrom = true
	}

	if !haveRevFrom && trackerNeedsExplicitFrom(trk) {
		proceed, err := confirmFirstDeploy(name, opts.Yes)
		if err != nil {
			return err
		}
		if !proceed {
			cliLog.Print("skipping location " + name)
			return nil
		}
	}

	revTo := opts.RevTo
	var revToToken tracker.Token = revTo
	if revTo == "" {
		revToToken, err = trk.Current(ctx, ws.Dir)
		if err != nil {
			return fmt.Errorf("location %q: resolving current revision: %w", name, err)
		}
	}

	staging, err := os.MkdirTemp("", "creep-staging-")
	if err != nil {
		return err
	}
	defer fileutil.SafeRemoveAll(staging)

	trackerActions, newToken, err := trk.Diff(ctx, ws.Dir, staging, revFromToken, revToToken)
	if err != nil {
		return fmt.Errorf("location %q: computing diff: %w", name, err)
	}

	explicit, err := materializeExplicit(ws.Dir, staging, opts.AppendFiles, opts.RemoveFiles)
	if err != nil {
		return fmt.Errorf("location %q: materializing append/remove files: %w", name, err)
	}
	explicitFromLocation, err := materializeExplicit(ws.Dir, staging, loc.AppendFiles, loc.RemoveFiles)
	if err != nil {
		return fmt.Errorf("location %q: materializing location append/remove files: %w", name, err)
	}

	all := append(append(trackerActions, explicit...), explicitFromLocation...)

	engine := modifier.New(staging, def.Modifiers)
	processed, err := engine.Apply(ctx, all)
	if err != nil {
		return fmt.Errorf("location %q: applying modifiers: %w", name, err)
	}

	revAdvanced := fmt.Sprint(newToken) != fmt.Sprint(revFromToken)
	if !loc.Local && revAdvanced {
		nextRev := rev.With(name, newToken)
		var buf bytes.Buffer
		if err := revision.Save(&buf, nextRev); err != nil {
			return err
		}
		statePath := filepath.Join(staging, filepath.FromSlash(loc.State))
		if err := os.MkdirAll(filepath.Dir(statePath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(statePath, buf.Bytes(), 0o644); err != nil {
			return err
		}
		processed = append(processed, action.Action{Path: loc.State, Kind: action.Add})
	}

	deployable := filterDeployable(processed)
	if len(deployable) == 0 {
		cliLog.Print("nothing to deploy for " + name)
		return nil
	}

	if err := preview(deployable); err != nil {
		return err
	}
	if !opts.Yes {
		ok, err := console.Confirm(fmt.Sprintf("Deploy %d action(s) to %q?", len(deployable), name))
		if err != nil {
			return err
		}
		if !ok {
			cliLog.Print("deployment declined for " + name)
			return nil
		}
	}

	action.Sort(deployable)
	if err := dep.Send(ctx, staging, deployable); err != nil {
		return fmt.Errorf("location %q: sending: %w", name, err)
	}

	if loc.Local && revAdvanced {
		nextRev := rev.With(name, newToken)
		if err := writeLocalRevision(baseDir, loc.State, nextRev); err != nil {
			return err
		}
	}

	return nil
}

func filterDeployable(actions []action.Action) []action.Action {
	out := make([]action.Action, 0, len(actions))
	for _, a := range actions {
		if a.Deployable() {
			out = append(out, a)
		}
	}
	return out
}

func preview(actions []action.Action) error {
	previewer := deployer.NewConsole()
	sorted := append([]action.Action(nil), actions...)
	action.Sort(sorted)
	return previewer.Send(context.Background(), "", sorted)
}

func trackerNeedsExplicitFrom(trk tracker.Tracker) bool {
	_, ok := trk.(*vcstracker.VCS)
	return ok
}

func confirmFirstDeploy(name string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	return console.Confirm(fmt.Sprintf("No previous revision recorded for %q; deploy from scratch?", name))
}

func definitionBaseDir(def *definition.Definition) string {
	if def.Path != "" {
		return filepath.Dir(def.Path)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func readRevision(ctx context.Context, dep deployer.Deployer, loc definition.EnvironmentLocation, baseDir string) (revision.Revision, deployer.ReadStatus, error) {
	if loc.Local {
		path := loc.State
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return revision.Revision{}, deployer.StatusEmpty, nil
		}
		if err != nil {
			return nil, deployer.StatusUnreachable, err
		}
		rev, err := revision.Load(bytes.NewReader(data))
		return rev, deployer.StatusFound, err
	}

	data, status, err := dep.Read(ctx, loc.State)
	if err != nil || status != deployer.StatusFound {
		return revision.Revision{}, status, err
	}
	rev, err := revision.Load(bytes.NewReader(data))
	return rev, status, err
}

func writeLocalRevision(baseDir, state string, rev revision.Revision) error {
	path := state
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return revision.Save(f, rev)
}

// materializeExplicit expands the given append/remove paths (files or
// directories, recursively) into ADD/DEL actions, copying append targets'
// current bytes into staging.
func materializeExplicit(workspaceDir, stagingDir string, appends, removes []string) ([]action.Action, error) {
	var actions []action.Action

	for _, p := range appends {
		expanded, err := expandPaths(workspaceDir, p)
		if err != nil {
			return nil, err
		}
		for _, rel := range expanded {
			src := filepath.Join(workspaceDir, filepath.FromSlash(rel))
			dst := filepath.Join(stagingDir, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return nil, err
			}
			if err := fileutil.CopyFile(src, dst); err != nil {
				return nil, err
			}
			actions = append(actions, action.Action{Path: rel, Kind: action.Add})
		}
	}

	for _, p := range removes {
		actions = append(actions, action.Action{Path: pathutil.Normalize(p), Kind: action.Del})
	}

	return actions, nil
}

func expandPaths(workspaceDir, rel string) ([]string, error) {
	full := filepath.Join(workspaceDir, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{pathutil.Normalize(rel)}, nil
	}

	var paths []string
	err = filepath.Walk(full, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		r, err := filepath.Rel(workspaceDir, path)
		if err != nil {
			return err
		}
		paths = append(paths, pathutil.Normalize(filepath.ToSlash(r)))
		return nil
	})
	return paths, err
}
