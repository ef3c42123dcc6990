//go:build !js && !wasm

package console

import (
	"os"

	"github.com/charmbracelet/huh"
)

// IsAccessibleMode reports whether interactive prompts should fall back to a
// plain, screen-reader-friendly line mode instead of the full TUI form.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// Confirm shows the "Deploy?" confirmation before a location's actions are sent.
// Returns true if the user confirms, false if they decline or an error occurs.
func Confirm(title string) (bool, error) {
	var confirmed bool

	confirmForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithAccessible(IsAccessibleMode())

	if err := confirmForm.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
