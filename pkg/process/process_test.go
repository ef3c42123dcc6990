package process

import (
	"context"
	"strings"
	"testing"
)

func TestRunShellCapturesStdout(t *testing.T) {
	result, err := Run(context.Background(), t.TempDir(), true, nil, "echo hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(string(result.Stdout)) != "hello" {
		t.Errorf("stdout = %q, want %q", result.Stdout, "hello")
	}
	if result.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", result.ExitCode)
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	result, err := Run(context.Background(), t.TempDir(), true, nil, "exit 3")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", result.ExitCode)
	}
}

func TestRunStdinIsPiped(t *testing.T) {
	result, err := Run(context.Background(), t.TempDir(), true, strings.NewReader("piped input"), "cat")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(result.Stdout) != "piped input" {
		t.Errorf("stdout = %q, want %q", result.Stdout, "piped input")
	}
}

func TestRunArgvForm(t *testing.T) {
	result, err := Run(context.Background(), t.TempDir(), false, nil, "echo", "a", "b")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(string(result.Stdout)) != "a b" {
		t.Errorf("stdout = %q", result.Stdout)
	}
}
