// Package process runs external commands on behalf of modifier rules, the way
// the teacher's pkg/cli wraps exec.Command with captured output and error
// wrapping, but generalized to accept an arbitrary command line (optionally
// run through a shell) and optional stdin.
package process

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/r3c/creep/pkg/logger"
)

var processLog = logger.New("pkg:process")

// Result captures a finished command's output and exit status.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Run executes command (with args, or as a single shell line when shell is
// true) in dir, feeding it stdin if non-nil, and returns its captured output.
// A non-zero exit is reported through Result.ExitCode, not as an error; Run
// only returns an error when the command could not be started at all.
func Run(ctx context.Context, dir string, shell bool, stdin io.Reader, command string, args ...string) (Result, error) {
	var cmd *exec.Cmd
	if shell {
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", command)
	} else {
		cmd = exec.CommandContext(ctx, command, args...)
	}
	cmd.Dir = dir
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	processLog.Debugf("running %q in %q", command, dir)
	err := cmd.Run()

	exitCode := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
		err = nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("process: failed to start %q: %w", command, err)
	}

	return Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: exitCode}, nil
}
