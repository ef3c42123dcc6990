// Package definition builds immutable Definition, Environment and Modifier
// records from a tree of configuration files, per the configuration reader's
// typed cursor (pkg/config).
package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/r3c/creep/pkg/config"
	"github.com/r3c/creep/pkg/constants"
)

// Definition is the root configuration object for one deployment, built once
// per run (and once per cascade) and never mutated afterward.
type Definition struct {
	Origin      Origin
	Environment Environment
	Tracker     string // "hash", "vcs", or "" to autodetect
	Options     map[string]string
	Cascades    []*Definition
	Modifiers   []Modifier
	Path        string // absolute path of the file this Definition was parsed from, "" if inline
}

// LoadRef resolves a definition reference as given on the command line or by
// a cascade entry: a literal inline JSON object (starts with "{"), or a file
// or directory path.
func LoadRef(ref string, baseDir string, diags *config.Diagnostics) (*Definition, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "{") {
		return loadInline(ref, baseDir, diags)
	}

	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, string(constants.DefaultDefinitionFileName))
	}
	return Load(path, diags)
}

func loadInline(raw, baseDir string, diags *config.Diagnostics) (*Definition, error) {
	root, err := config.Parse("<inline>", []byte(raw), diags)
	if err != nil {
		return nil, err
	}
	return build(root, baseDir, diags)
}

// Load parses and resolves the include chain of the definition file at path,
// then builds the Definition it describes.
func Load(path string, diags *config.Diagnostics) (*Definition, error) {
	root, err := config.Load(path, diags)
	if err != nil {
		return nil, err
	}
	return build(root, filepath.Dir(path), diags)
}

func build(root config.Configuration, baseDir string, diags *config.Diagnostics) (*Definition, error) {
	def := &Definition{}
	if owner := root.OwnerFilePath(); owner != "<inline>" {
		def.Path = owner
	}

	if originRaw, err := root.ReadField("origin").ReadString(""); err != nil {
		return nil, err
	} else if originRaw != "" {
		def.Origin = ParseOrigin(originRaw, baseDir)
	}

	env, envPath, err := loadEnvironment(root.ReadField("environment"), baseDir, diags)
	if err != nil {
		return nil, err
	}
	def.Environment = env

	tracker, err := root.ReadField("tracker").ReadString("")
	if err != nil {
		return nil, err
	}
	if tracker != "" && tracker != "hash" && tracker != "vcs" {
		return nil, fmt.Errorf("%s: unknown tracker %q", root.OwnerFilePath(), tracker)
	}
	def.Tracker = tracker

	options, err := readStringMap(root.ReadField("options"))
	if err != nil {
		return nil, err
	}
	def.Options = options

	modifierFields, err := root.ReadField("modifiers").ReadList()
	if err != nil {
		return nil, err
	}
	for _, mc := range modifierFields {
		m, err := readModifier(mc)
		if err != nil {
			return nil, err
		}
		def.Modifiers = append(def.Modifiers, m)
	}

	cascadeFields, err := root.ReadField("cascades").ReadList()
	if err != nil {
		return nil, err
	}
	for _, cc := range cascadeFields {
		cascade, err := buildCascade(cc, baseDir, diags)
		if err != nil {
			return nil, err
		}
		def.Cascades = append(def.Cascades, cascade)
	}

	// Every opened configuration file must auto-ignore itself (§3 invariant).
	if def.Path != "" && def.Path != "<inline>" {
		def.Modifiers = append(def.Modifiers, selfIgnoreModifier(filepath.Base(def.Path)))
	}
	if envPath != "" {
		def.Modifiers = append(def.Modifiers, selfIgnoreModifier(filepath.Base(envPath)))
	}

	root.WarnOrphanKeys()
	return def, nil
}

func buildCascade(c config.Configuration, baseDir string, diags *config.Diagnostics) (*Definition, error) {
	value, _ := c.ReadValue()
	if s, ok := value.(string); ok {
		return LoadRef(s, baseDir, diags)
	}
	return build(c, baseDir, diags)
}
