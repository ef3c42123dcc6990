// Package console renders structured log records and user-facing messages for the
// deploy CLI, translating the inline ((color)) markup emitted by the logger package
// into ANSI escapes on a terminal, or stripping it otherwise.
package console

import (
	"regexp"
	"strings"

	"github.com/r3c/creep/pkg/styles"
	"github.com/r3c/creep/pkg/tty"
)

var noColor = false

// SetNoColor disables ANSI rendering regardless of TTY detection. Set from the
// CLI's --no-color flag.
func SetNoColor(v bool) {
	noColor = v
}

func isTTY() bool {
	return tty.IsStdoutTerminal() && !noColor
}

func applyStyle(name, text string) string {
	if !isTTY() {
		return text
	}
	if style, ok := styles.ByName(name); ok {
		return style.Render(text)
	}
	return text
}

var markupTag = regexp.MustCompile(`\(\(([a-z]+)\)\)`)

// Colorize translates ((name)) ... ((reset)) markup pairs embedded in a log message
// into ANSI escapes when writing to a terminal with color enabled, or strips the
// markup entirely otherwise. Tags do not nest; a ((reset)) always closes the most
// recently opened tag.
func Colorize(message string) string {
	if !strings.Contains(message, "((") {
		return message
	}

	if !isTTY() {
		return markupTag.ReplaceAllString(message, "")
	}

	var out strings.Builder
	rest := message
	for {
		loc := markupTag.FindStringSubmatchIndex(rest)
		if loc == nil {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:loc[0]])
		tag := rest[loc[2]:loc[3]]
		after := rest[loc[1]:]

		if tag == "reset" {
			rest = after
			continue
		}

		closeLoc := markupTag.FindStringIndex(after)
		if closeLoc == nil {
			out.WriteString(applyStyle(tag, after))
			rest = ""
			break
		}
		out.WriteString(applyStyle(tag, after[:closeLoc[0]]))
		rest = after[closeLoc[1]:]
	}
	return out.String()
}

// FormatSuccessMessage formats a success message with styling.
func FormatSuccessMessage(message string) string {
	return applyStyle("success", "✓ ") + message
}

// FormatInfoMessage formats an informational message.
func FormatInfoMessage(message string) string {
	return applyStyle("info", "ℹ ") + message
}

// FormatWarningMessage formats a warning message.
func FormatWarningMessage(message string) string {
	return applyStyle("warning", "⚠ ") + message
}

// FormatErrorMessage formats a simple error message (for stderr output).
func FormatErrorMessage(message string) string {
	return applyStyle("error", "✗ ") + message
}

// FormatLocationMessage formats a "deploying to X" style message.
func FormatLocationMessage(message string) string {
	return applyStyle("path", "📁 ") + message
}

// FormatCommandMessage formats a shell command echo.
func FormatCommandMessage(command string) string {
	return applyStyle("command", "⚡ ") + command
}

// FormatPromptMessage formats a user prompt message.
func FormatPromptMessage(message string) string {
	return applyStyle("prompt", "❓ ") + message
}

// FormatVerboseMessage formats verbose debugging output.
func FormatVerboseMessage(message string) string {
	return applyStyle("verbose", "🔍 ") + message
}

// FormatSectionHeader formats a section header.
func FormatSectionHeader(header string) string {
	return applyStyle("header", header)
}

// FormatAction formats a single queued action for preview output, using the same
// +/-/! marker convention as the console deployer: +path (ADD), -path (DEL),
// !path (ERR).
func FormatAction(marker, path string) string {
	switch marker {
	case "+":
		return applyStyle("add", "+"+path)
	case "-":
		return applyStyle("del", "-"+path)
	case "!":
		return applyStyle("error", "!"+path)
	default:
		return marker + path
	}
}
