package cli

import (
	"context"
	"os"

	"go.uber.org/multierr"

	"github.com/r3c/creep/pkg/config"
	"github.com/r3c/creep/pkg/console"
	"github.com/r3c/creep/pkg/definition"
	"github.com/r3c/creep/pkg/logger"
)

var cliLog = logger.New("pkg:cli")

// Run builds the top-level Definition from opts and deploys every requested
// location, recursing into cascades. It returns true on full success; a
// false result corresponds to exit code 1 (§6).
func Run(ctx context.Context, opts Options) bool {
	diags := &config.Diagnostics{}

	baseDir := opts.Base
	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		}
	}

	ref := opts.DefinitionRef
	if ref == "" {
		ref = baseDir
	}

	def, err := definition.LoadRef(ref, baseDir, diags)
	printDiagnostics(diags)
	if err != nil {
		cliLog.Error(err.Error())
		return false
	}

	names := opts.Locations
	if len(names) == 0 {
		names = []string{"default"}
	}

	return runDefinition(ctx, def, names, opts)
}

func printDiagnostics(diags *config.Diagnostics) {
	for _, d := range diags.All() {
		cliLog.Print(console.FormatConfigError(d))
	}
}

// runDefinition implements §4.6 points 1-4 for a single Definition (the
// top-level one, or a cascade): for every requested location name, run sync
// when a connection is present, then unconditionally recurse into every
// cascade Definition.
func runDefinition(ctx context.Context, def *definition.Definition, names []string, opts Options) bool {
	resolved := resolveNames(def, names)

	var combined error
	for _, name := range resolved {
		loc, ok := def.Environment[name]
		if !ok {
			cliLog.Warn("unknown location " + name)
			continue
		}

		if loc.Connection != "" {
			if err := syncLocation(ctx, def, loc, name, opts); err != nil {
				combined = multierr.Append(combined, err)
			}
		}

		for _, cascade := range def.Cascades {
			if !runDefinition(ctx, cascade, names, opts.forCascade()) {
				combined = multierr.Append(combined, errCascadeFailed)
			}
		}
	}

	if combined != nil {
		cliLog.Error(combined.Error())
		return false
	}
	return true
}

// resolveNames expands a bare "*" into every location name in the
// definition's environment, including connection-less cascade carriers per
// the Open Question resolved in SPEC_FULL.md.
func resolveNames(def *definition.Definition, names []string) []string {
	if len(names) == 1 && names[0] == "*" {
		all := make([]string, 0, len(def.Environment))
		for name := range def.Environment {
			all = append(all, name)
		}
		return all
	}
	return names
}
