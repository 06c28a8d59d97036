// Package format pretty-prints generated source units.
//
// The generator never formats code itself; it hands every unit to a
// Formatter and writes whatever comes back. The default Formatter runs
// "zig fmt --stdin".
package format

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cyuria/way2/internal/runner"
)

// Formatter turns source text into formatted source text.
type Formatter interface {
	Format(ctx context.Context, src []byte) ([]byte, error)
}

// Func adapts a function to the Formatter interface.
type Func func(ctx context.Context, src []byte) ([]byte, error)

func (f Func) Format(ctx context.Context, src []byte) ([]byte, error) {
	return f(ctx, src)
}

// Nop returns the source unchanged.
var Nop Formatter = Func(func(_ context.Context, src []byte) ([]byte, error) {
	return src, nil
})

type unitKey struct{}

// WithUnit returns a context naming the unit being formatted.
func WithUnit(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, unitKey{}, path)
}

// Unit returns the unit path set by WithUnit, or "".
func Unit(ctx context.Context) string {
	path, _ := ctx.Value(unitKey{}).(string)
	return path
}

// DefaultCommand is the formatter command line used when none is given.
var DefaultCommand = []string{"zig", "fmt", "--stdin"}

// Error reports a formatter command that exited unsuccessfully.
type Error struct {
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", strings.Join(e.Command, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Exec formats source by piping it through an external command.
type Exec struct {
	// Command is the command line. Empty means DefaultCommand.
	Command []string

	// Runner executes the command. Nil means runner.ExecRunner.
	Runner runner.Runner
}

// Format runs the command with src on stdin and returns its stdout.
func (x *Exec) Format(ctx context.Context, src []byte) ([]byte, error) {
	command := x.Command
	if len(command) == 0 {
		command = DefaultCommand
	}
	r := x.Runner
	if r == nil {
		r = runner.ExecRunner{}
	}

	res, err := r.Run(ctx, src, command[0], command[1:]...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil || res.ExitCode != 0 {
		if err == nil {
			err = errors.New("non-zero exit")
		}
		return nil, &Error{
			Command:  command,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
			Err:      err,
		}
	}
	return res.Stdout, nil
}
