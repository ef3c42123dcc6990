package deployer

import (
	"context"
	"fmt"

	"github.com/r3c/creep/pkg/action"
	"github.com/r3c/creep/pkg/console"
)

// Console is the preview-only deployer: it never touches a real destination,
// it just prints what would be sent.
type Console struct{}

// NewConsole builds a Console deployer.
func NewConsole() *Console {
	return &Console{}
}

// Read is unsupported by the console deployer; it exists only for preview.
func (c *Console) Read(_ context.Context, relativePath string) ([]byte, ReadStatus, error) {
	return nil, StatusUnreachable, fmt.Errorf("deployer: console deployer does not support read(%q)", relativePath)
}

// Send prints one marked line per action: +path (ADD), -path (DEL),
// !path (anything else, e.g. a modifier-downgraded ERR).
func (c *Console) Send(_ context.Context, _ string, actions []action.Action) error {
	for _, a := range actions {
		fmt.Println(console.FormatAction(a.Kind.Marker(), a.Path))
	}
	return nil
}
