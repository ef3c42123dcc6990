package definition

import (
	"os"
	"path/filepath"

	"github.com/r3c/creep/pkg/config"
	"github.com/r3c/creep/pkg/constants"
)

// EnvironmentLocation is a single named deployment destination.
type EnvironmentLocation struct {
	Connection  string // "" means this location exists only to carry cascades
	Local       bool
	State       string
	AppendFiles []string
	RemoveFiles []string
	Options     map[string]string
}

// Environment is a named set of locations, loaded either inline from a
// Definition's "environment" object or from a referenced .creep.env file.
type Environment map[string]EnvironmentLocation

// loadEnvironment resolves a Definition's "environment" field: an inline
// object is parsed directly, a string is resolved relative to baseDir
// (falling back to constants.DefaultEnvironmentFileName when it names a
// directory) and loaded as its own JSON document.
func loadEnvironment(field config.Configuration, baseDir string, diags *config.Diagnostics) (Environment, string, error) {
	value, defined := field.ReadValue()
	if !defined {
		return Environment{}, "", nil
	}

	if s, ok := value.(string); ok {
		path := s
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, string(constants.DefaultEnvironmentFileName))
		}
		root, err := config.Load(path, diags)
		if err != nil {
			return nil, "", err
		}
		env, err := parseEnvironmentObject(root)
		return env, path, err
	}

	env, err := parseEnvironmentObject(field)
	return env, "", err
}

func parseEnvironmentObject(root config.Configuration) (Environment, error) {
	fields, err := root.ReadObject()
	if err != nil {
		return nil, err
	}

	env := make(Environment, len(fields))
	for name, c := range fields {
		loc, err := readLocation(c)
		if err != nil {
			return nil, err
		}
		env[name] = loc
	}
	return env, nil
}

func readLocation(c config.Configuration) (EnvironmentLocation, error) {
	connection, err := c.ReadField("connection").ReadString("")
	if err != nil {
		return EnvironmentLocation{}, err
	}
	local, err := c.ReadField("local").ReadBool(false)
	if err != nil {
		return EnvironmentLocation{}, err
	}
	state, err := c.ReadField("state").ReadString(string(constants.DefaultRevisionFileName))
	if err != nil {
		return EnvironmentLocation{}, err
	}

	appendFiles, err := readStringList(c.ReadField("append_files", "appendFiles"))
	if err != nil {
		return EnvironmentLocation{}, err
	}
	removeFiles, err := readStringList(c.ReadField("remove_files", "removeFiles"))
	if err != nil {
		return EnvironmentLocation{}, err
	}

	options, err := readStringMap(c.ReadField("options"))
	if err != nil {
		return EnvironmentLocation{}, err
	}

	c.WarnOrphanKeys()

	return EnvironmentLocation{
		Connection:  connection,
		Local:       local,
		State:       state,
		AppendFiles: appendFiles,
		RemoveFiles: removeFiles,
		Options:     options,
	}, nil
}

func readStringList(field config.Configuration) ([]string, error) {
	if !field.IsDefined() {
		return nil, nil
	}
	items, err := field.ReadList()
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		s, err := item.ReadString("")
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func readStringMap(field config.Configuration) (map[string]string, error) {
	if !field.IsDefined() {
		return map[string]string{}, nil
	}
	fields, err := field.ReadObject()
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(fields))
	for key, c := range fields {
		s, err := c.ReadString("")
		if err != nil {
			return nil, err
		}
		result[key] = s
	}
	return result, nil
}
