// Package styles provides centralized style and color definitions for terminal output.
//
// # Adaptive Color System
//
// This package uses lipgloss.AdaptiveColor to automatically adapt colors based on the
// terminal background, ensuring good readability in both light and dark terminal themes.
// Each color constant includes both Light and Dark variants that are automatically
// selected based on the user's terminal configuration.
package styles

import "github.com/charmbracelet/lipgloss"

// Adaptive colors that work well in both light and dark terminal themes.
var (
	// ColorError is used for error messages and ERR actions.
	ColorError = lipgloss.AdaptiveColor{
		Light: "#D73737",
		Dark:  "#FF5555",
	}

	// ColorWarning is used for warning and deprecation messages.
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#E67E22",
		Dark:  "#FFB86C",
	}

	// ColorSuccess is used for success messages and ADD actions.
	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#27AE60",
		Dark:  "#50FA7B",
	}

	// ColorInfo is used for informational messages.
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2980B9",
		Dark:  "#8BE9FD",
	}

	// ColorPurple is used for file paths, commands and renames.
	ColorPurple = lipgloss.AdaptiveColor{
		Light: "#8E44AD",
		Dark:  "#BD93F9",
	}

	// ColorYellow is used for DEL actions and progress output.
	ColorYellow = lipgloss.AdaptiveColor{
		Light: "#B7950B",
		Dark:  "#F1FA8C",
	}

	// ColorComment is used for secondary/muted information.
	ColorComment = lipgloss.AdaptiveColor{
		Light: "#6C7A89",
		Dark:  "#6272A4",
	}
)

// Pre-configured styles for common use cases.
var (
	// Error style for error messages and ERR actions - bold red.
	Error = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// Warning style for warning and deprecation messages - bold orange.
	Warning = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)

	// Success style for success messages and ADD actions - bold green.
	Success = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	// Info style for informational messages - bold cyan.
	Info = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)

	// FilePath style for file paths and locations - bold purple.
	FilePath = lipgloss.NewStyle().Bold(true).Foreground(ColorPurple)

	// Command style for shell command echoes - bold purple.
	Command = lipgloss.NewStyle().Bold(true).Foreground(ColorPurple)

	// Deleted style for DEL actions - yellow.
	Deleted = lipgloss.NewStyle().Foreground(ColorYellow)

	// Prompt style for the "Deploy?" confirmation - bold green.
	Prompt = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)

	// Verbose style for verbose/debug log lines - italic muted.
	Verbose = lipgloss.NewStyle().Italic(true).Foreground(ColorComment)

	// Header style for section headers - bold cyan.
	Header = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
)

// ByName looks up a pre-configured style by its markup tag name, as used in
// the ((name)) inline color markup emitted by the logger package.
// The bool result is false when name is not a recognized tag.
func ByName(name string) (lipgloss.Style, bool) {
	switch name {
	case "error":
		return Error, true
	case "warning":
		return Warning, true
	case "success", "add":
		return Success, true
	case "info":
		return Info, true
	case "path", "file":
		return FilePath, true
	case "command":
		return Command, true
	case "del", "deleted":
		return Deleted, true
	case "prompt":
		return Prompt, true
	case "verbose":
		return Verbose, true
	case "header":
		return Header, true
	default:
		return lipgloss.NewStyle(), false
	}
}
