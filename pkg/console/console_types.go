package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigError is a structured configuration error carrying the owning file path
// and a JSON-pointer-like position within it, so validation failures can be
// reported as "{path}:{position}: message".
type ConfigError struct {
	Path     string
	Position string
	Severity string // "error", "warning"
	Message  string
}

func (e ConfigError) Error() string {
	return e.String()
}

// String renders the error in "{path}:{position}: severity: message" form.
func (e ConfigError) String() string {
	location := ToRelativePath(e.Path)
	if e.Position != "" {
		location += ":" + e.Position
	}
	return fmt.Sprintf("%s: %s: %s", location, e.Severity, e.Message)
}

// FormatConfigError renders a ConfigError with console styling based on severity.
func FormatConfigError(err ConfigError) string {
	switch err.Severity {
	case "warning":
		return FormatWarningMessage(err.String())
	default:
		return FormatErrorMessage(err.String())
	}
}

// ToRelativePath converts an absolute path to a path relative to the current
// working directory. If the relative path escapes the working directory (contains
// ".."), the absolute path is returned instead for clarity.
func ToRelativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}

	if strings.Contains(relPath, "..") {
		return path
	}

	return relPath
}
