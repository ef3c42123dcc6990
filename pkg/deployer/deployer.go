// Package deployer implements the transport layer: reading a destination's
// small remote state file and sending a batch of add/delete actions to it,
// for each of the four supported destinations (console preview, local
// filesystem, FTP/FTPS, SSH).
package deployer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/r3c/creep/pkg/action"
)

// ReadStatus distinguishes "file absent but destination reachable" from
// "destination itself is unreachable", since the orchestrator treats the two
// very differently (first deploy vs. hard reachability error).
type ReadStatus int

const (
	// StatusFound means the requested bytes were read successfully.
	StatusFound ReadStatus = iota
	// StatusEmpty means the destination is reachable but the file is absent.
	StatusEmpty
	// StatusUnreachable means the destination itself could not be reached.
	StatusUnreachable
)

// Deployer is the common transport contract implemented by every
// destination kind.
type Deployer interface {
	Read(ctx context.Context, relativePath string) ([]byte, ReadStatus, error)
	Send(ctx context.Context, stagingDir string, actions []action.Action) error
}

// New builds the Deployer named by connection's URL scheme ("file", "ftp",
// "ftps", "ssh"), configured with the location's free-form options.
func New(connection string, options map[string]string) (Deployer, error) {
	u, err := url.Parse(connection)
	if err != nil {
		return nil, fmt.Errorf("deployer: invalid connection %q: %w", connection, err)
	}

	switch u.Scheme {
	case "file", "":
		return NewFile(u), nil
	case "ftp", "ftps":
		return NewFTP(u, options), nil
	case "ssh":
		return NewSSH(u, options)
	default:
		return nil, fmt.Errorf("deployer: unsupported connection scheme %q", u.Scheme)
	}
}
