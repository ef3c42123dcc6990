// Package logger provides the small leveled, indentation-aware logger used
// throughout the deploy pipeline. Every package that needs to report progress
// constructs one logger per component with New and writes through it, following
// the same "var xLog = logger.New(\"pkg:component\")" convention at every call site.
package logger

import (
	"fmt"
	"os"

	"github.com/r3c/creep/pkg/console"
)

// Level controls how much output a Logger actually writes.
type Level int

const (
	// LevelQuiet suppresses everything but Warn/Error.
	LevelQuiet Level = iota
	// LevelNormal is the default: Print/Printf and above.
	LevelNormal
	// LevelVerbose additionally emits Debugf output.
	LevelVerbose
)

var globalLevel = LevelNormal

// SetLevel sets the process-wide verbosity, driven by the CLI's -q/-v flags.
func SetLevel(l Level) {
	globalLevel = l
}

// Logger writes indented lines to stderr, gated by the process-wide
// verbosity level set with SetLevel. The component name given to New is
// kept on the Logger but is not written into the output.
type Logger struct {
	component string
	indent    int
}

// New creates a logger tagged with component, conventionally "pkg:file".
func New(component string) *Logger {
	return &Logger{component: component}
}

// Indented returns a child logger whose output is nested one level deeper.
func (l *Logger) Indented() *Logger {
	return &Logger{component: l.component, indent: l.indent + 1}
}

// Print writes a single line at normal verbosity.
func (l *Logger) Print(message string) {
	l.write(LevelNormal, message)
}

// Printf writes a formatted line at normal verbosity.
func (l *Logger) Printf(format string, args ...any) {
	l.write(LevelNormal, fmt.Sprintf(format, args...))
}

// Debugf writes a formatted line only when the global level is LevelVerbose.
func (l *Logger) Debugf(format string, args ...any) {
	l.write(LevelVerbose, fmt.Sprintf(format, args...))
}

// Warn writes a warning-styled line at every verbosity level.
func (l *Logger) Warn(message string) {
	fmt.Fprintln(os.Stderr, l.prefix()+console.FormatWarningMessage(message))
}

// Error writes an error-styled line unconditionally.
func (l *Logger) Error(message string) {
	fmt.Fprintln(os.Stderr, l.prefix()+console.FormatErrorMessage(message))
}

func (l *Logger) write(min Level, message string) {
	if globalLevel < min {
		return
	}
	rendered := console.Colorize(message)
	if min == LevelVerbose {
		rendered = console.FormatVerboseMessage(rendered)
	}
	fmt.Fprintln(os.Stderr, l.prefix()+rendered)
}

func (l *Logger) prefix() string {
	indent := ""
	for i := 0; i < l.indent; i++ {
		indent += "  "
	}
	return indent
}
