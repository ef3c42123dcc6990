package definition

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/r3c/creep/pkg/config"
)

// Modifier is an immutable, regex-matched rule applied to a single staged
// path. Every field but Regex is optional; HasFilter distinguishes "no filter
// configured" from "filter configured as the empty string", since the latter
// is the idiomatic way to unconditionally suppress a file (§4.4).
type Modifier struct {
	Regex     *regexp.Regexp
	Rename    string
	HasRename bool
	Link      string
	HasLink   bool
	Modify    string
	HasModify bool
	Chmod     os.FileMode
	HasChmod  bool
	Filter    string
	HasFilter bool
}

// Matches reports whether the modifier's regex matches basename.
func (m Modifier) Matches(basename string) bool {
	return m.Regex.MatchString(basename)
}

func readModifier(c config.Configuration) (Modifier, error) {
	pattern, err := c.ReadField("regex", "pattern").ReadString("")
	if err != nil {
		return Modifier{}, err
	}
	if pattern == "" {
		return Modifier{}, fmt.Errorf("%s:%s: modifier requires a \"regex\" field", c.OwnerFilePath(), c.Pointer())
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Modifier{}, fmt.Errorf("%s:%s: invalid regex %q: %w", c.OwnerFilePath(), c.Pointer(), pattern, err)
	}

	m := Modifier{Regex: re}

	if field := c.ReadField("rename"); field.IsDefined() {
		m.Rename, err = field.ReadString("")
		if err != nil {
			return Modifier{}, err
		}
		m.HasRename = true
	}
	if field := c.ReadField("link"); field.IsDefined() {
		m.Link, err = field.ReadString("")
		if err != nil {
			return Modifier{}, err
		}
		m.HasLink = true
	}
	if field := c.ReadField("modify"); field.IsDefined() {
		m.Modify, err = field.ReadString("")
		if err != nil {
			return Modifier{}, err
		}
		m.HasModify = true
	}
	if field := c.ReadField("filter"); field.IsDefined() {
		m.Filter, err = field.ReadString("")
		if err != nil {
			return Modifier{}, err
		}
		m.HasFilter = true
	}
	if field := c.ReadField("chmod"); field.IsDefined() {
		raw, err := field.ReadString("")
		if err != nil {
			return Modifier{}, err
		}
		mode, err := strconv.ParseUint(raw, 8, 32)
		if err != nil {
			return Modifier{}, fmt.Errorf("%s:%s: invalid octal chmod %q: %w", c.OwnerFilePath(), c.Pointer(), raw, err)
		}
		m.Chmod = os.FileMode(mode)
		m.HasChmod = true
	}

	c.WarnOrphanKeys()
	return m, nil
}

// selfIgnoreModifier synthesizes the trailing filter-only modifier that
// auto-excludes an opened configuration file from ever being shipped (§3
// invariant: "every configuration file actually opened during load ... gets
// an auto-generated ignore modifier").
func selfIgnoreModifier(basename string) Modifier {
	return Modifier{
		Regex:     regexp.MustCompile("^" + regexp.QuoteMeta(basename) + "$"),
		Filter:    "",
		HasFilter: true,
	}
}
