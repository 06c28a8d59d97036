// Package runner executes external commands on behalf of the generator.
//
// The only command way2 runs is the source formatter, which reads the
// unit on stdin and writes the formatted unit to stdout.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result is the outcome of one command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner abstracts command execution so callers can be tested without
// spawning processes.
type Runner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (Result, error)
}

// ExecRunner runs commands on the local host with os/exec.
type ExecRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// Run starts name with args, feeds it stdin and waits for it to exit.
//
// A command that exits non-zero returns its output, its exit code and a
// non-nil error. A command that cannot be started reports exit code 127.
func (r ExecRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, err
	}

	res.ExitCode = 1
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		res.ExitCode = 127
	}
	return res, err
}

// Func adapts a function to the Runner interface.
type Func func(ctx context.Context, stdin []byte, name string, args ...string) (Result, error)

func (f Func) Run(ctx context.Context, stdin []byte, name string, args ...string) (Result, error) {
	return f(ctx, stdin, name, args...)
}
