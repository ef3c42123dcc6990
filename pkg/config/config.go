// Package config implements the Configuration reader: a cursor over a parsed
// JSON value tree that tracks which owning file produced it and a
// JSON-pointer-like position within that file, so every read can be traced
// back to a precise "{path}:{pointer}" location in diagnostics.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/r3c/creep/pkg/console"
)

// Diagnostics accumulates ConfigError values produced while reading a
// configuration tree, so the CLI can print them all at once and tests can
// assert on them directly instead of scraping log text.
type Diagnostics struct {
	errors []console.ConfigError
}

// Add records a diagnostic.
func (d *Diagnostics) Add(err console.ConfigError) {
	d.errors = append(d.errors, err)
}

// All returns every recorded diagnostic, in the order they were added.
func (d *Diagnostics) All() []console.ConfigError {
	return d.errors
}

// HasErrors reports whether any diagnostic has error (not warning) severity.
func (d *Diagnostics) HasErrors() bool {
	for _, e := range d.errors {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}

// Configuration is a cursor over a single JSON value within a parsed
// document: an object, array, string, number, bool or null, carrying the
// file it came from and its position within that file.
type Configuration struct {
	ownerFilePath string
	pointer       string
	value         any
	undefined     bool
	consumed      map[string]bool // only set when value is an object
	diags         *Diagnostics
}

// Parse parses raw JSON bytes owned by ownerFilePath into a root
// Configuration cursor.
func Parse(ownerFilePath string, raw []byte, diags *Diagnostics) (Configuration, error) {
	var value any
	if len(raw) == 0 {
		value = map[string]any{}
	} else if err := json.Unmarshal(raw, &value); err != nil {
		return Configuration{}, fmt.Errorf("%s: invalid JSON: %w", ownerFilePath, err)
	}
	return newConfiguration(ownerFilePath, "", value, diags), nil
}

func newConfiguration(ownerFilePath, pointer string, value any, diags *Diagnostics) Configuration {
	c := Configuration{ownerFilePath: ownerFilePath, pointer: pointer, value: value, diags: diags}
	if obj, ok := value.(map[string]any); ok {
		c.consumed = make(map[string]bool, len(obj))
	}
	return c
}

func (c Configuration) child(segment string, value any) Configuration {
	pointer := c.pointer + "/" + segment
	return newConfiguration(c.ownerFilePath, pointer, value, c.diags)
}

func (c Configuration) undefinedChild(segment string) Configuration {
	child := c.child(segment, nil)
	child.undefined = true
	return child
}

func (c Configuration) warn(message string) {
	if c.diags != nil {
		c.diags.Add(console.ConfigError{Path: c.ownerFilePath, Position: c.pointer, Severity: "warning", Message: message})
	}
}

func (c Configuration) fail(message string) error {
	err := console.ConfigError{Path: c.ownerFilePath, Position: c.pointer, Severity: "error", Message: message}
	if c.diags != nil {
		c.diags.Add(err)
	}
	return err
}

// IsDefined reports whether this cursor points at an actual value rather than
// a missing field.
func (c Configuration) IsDefined() bool {
	return !c.undefined
}

// Pointer returns the JSON-pointer-like position of this cursor.
func (c Configuration) Pointer() string {
	return c.pointer
}

// OwnerFilePath returns the file this cursor's value was parsed from.
func (c Configuration) OwnerFilePath() string {
	return c.ownerFilePath
}

// ReadField descends into an object field by name, falling back to any given
// aliases in order. When an alias (rather than name itself) is what supplied
// the value, a deprecation warning is recorded. Reading name marks it
// consumed for OrphanKeys purposes; so does reading a matched alias.
func (c Configuration) ReadField(name string, aliases ...string) Configuration {
	obj, ok := c.value.(map[string]any)
	if !ok {
		return c.undefinedChild(name)
	}

	if value, ok := obj[name]; ok {
		c.consumed[name] = true
		return c.child(name, value)
	}

	for _, alias := range aliases {
		if value, ok := obj[alias]; ok {
			c.consumed[alias] = true
			c.warn(fmt.Sprintf("key %q is deprecated, use %q instead", alias, name))
			return c.child(name, value)
		}
	}

	return c.undefinedChild(name)
}

// ReadObject treats this cursor's value as a JSON object and returns one
// child cursor per key, keyed by field name. Returns an error if the value is
// defined but not an object.
func (c Configuration) ReadObject() (map[string]Configuration, error) {
	if c.undefined {
		return map[string]Configuration{}, nil
	}
	obj, ok := c.value.(map[string]any)
	if !ok {
		return nil, c.fail("expected an object")
	}
	result := make(map[string]Configuration, len(obj))
	for key, value := range obj {
		c.consumed[key] = true
		result[key] = c.child(key, value)
	}
	return result, nil
}

// ReadList treats this cursor's value as a JSON array and returns one child
// cursor per element, in order. Returns an error if the value is defined but
// not an array.
func (c Configuration) ReadList() ([]Configuration, error) {
	if c.undefined {
		return nil, nil
	}
	list, ok := c.value.([]any)
	if !ok {
		return nil, c.fail("expected an array")
	}
	result := make([]Configuration, len(list))
	for i, value := range list {
		result[i] = c.child(fmt.Sprintf("%d", i), value)
	}
	return result, nil
}

// ReadString reads this cursor's value as a string, returning def if the
// cursor is undefined, and an error if it is defined but not a string.
func (c Configuration) ReadString(def string) (string, error) {
	if c.undefined {
		return def, nil
	}
	s, ok := c.value.(string)
	if !ok {
		return "", c.fail("expected a string")
	}
	return s, nil
}

// ReadBool reads this cursor's value as a boolean, returning def if the
// cursor is undefined, and an error if it is defined but not a boolean.
func (c Configuration) ReadBool(def bool) (bool, error) {
	if c.undefined {
		return def, nil
	}
	b, ok := c.value.(bool)
	if !ok {
		return false, c.fail("expected a boolean")
	}
	return b, nil
}

// ReadValue returns the raw underlying value and whether it is defined.
func (c Configuration) ReadValue() (any, bool) {
	return c.value, !c.undefined
}

// OrphanKeys reports the object keys present in this cursor's value that were
// never consumed by a ReadField/ReadObject call, so the caller can warn about
// unrecognized configuration keys (typos, stale options) without having to
// special-case every known field twice.
func (c Configuration) OrphanKeys() []string {
	obj, ok := c.value.(map[string]any)
	if !ok {
		return nil
	}
	var orphans []string
	for key := range obj {
		if !c.consumed[key] {
			orphans = append(orphans, key)
		}
	}
	return orphans
}

// WarnOrphanKeys records a warning diagnostic for every key OrphanKeys
// reports, in the style "unrecognized key %q".
func (c Configuration) WarnOrphanKeys() {
	for _, key := range c.OrphanKeys() {
		c.child(key, nil).warn(fmt.Sprintf("unrecognized key %q", key))
	}
}

// GetInclude reads this object's "include" field as a list of file paths to
// merge in before the rest of the object is interpreted, mirroring the
// original tool's include-chasing. Returns a nil slice when no include field
// is present.
func (c Configuration) GetInclude() ([]string, error) {
	field := c.ReadField("include")
	if !field.IsDefined() {
		return nil, nil
	}

	items, err := field.ReadList()
	if err != nil {
		// Tolerate a single bare string as shorthand for a one-element list.
		if s, ok := field.value.(string); ok {
			return []string{s}, nil
		}
		return nil, err
	}

	includes := make([]string, 0, len(items))
	for _, item := range items {
		s, err := item.ReadString("")
		if err != nil {
			return nil, err
		}
		includes = append(includes, s)
	}
	return includes, nil
}
