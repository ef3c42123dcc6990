package cli

import "errors"

var errCascadeFailed = errors.New("a cascaded definition failed")

// errRunFailed carries no message of its own: Run has already logged the
// specific failure, this just signals main to exit 1 without cobra printing
// a second, redundant error line.
var errRunFailed = errors.New("")
