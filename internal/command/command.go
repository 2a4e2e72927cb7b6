package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

type envKeyType struct{}

// EnvKey is a [context.Context.WithValue] key that can be used to override the environment of
// commands that are executed by this package.  The value must have type []string where each entry
// has the form "name=value".
var EnvKey = envKeyType{}

// New constructs a new [exec.Cmd] with the given arguments and working directory.  The command's
// stdin, stdout, and stderr are left unset.
func New(ctx context.Context, wd string, args ...string) *exec.Cmd {
	slog.DebugContext(ctx, "running command", "wd", wd, "args", args)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = wd
	if v := ctx.Value(EnvKey); v != nil {
		cmd.Env = v.([]string)
	}
	slog.DebugContext(ctx, "command environment", "env", cmd.Env)
	return cmd
}

// A StartError is returned when a command could not be launched at all (for example, the program
// is not installed or is not on the search path).
type StartError struct {
	Args []string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start command %q: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// Output holds everything a finished command wrote along with its exit status.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status 0.
func (o *Output) Success() bool {
	return o.ExitCode == 0
}

// Capture runs the command to completion and collects its stdout and stderr.  A non-zero exit
// status is not an error; it is reported via [Output.ExitCode].  The returned error is a
// [*StartError] if the command could not be launched.
func Capture(ctx context.Context, wd string, args ...string) (*Output, error) {
	cmd := New(ctx, wd, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return nil, &StartError{Args: args, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("command %q failed: %w", strings.Join(args, " "), err)
		}
	}
	out := &Output{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}
	slog.DebugContext(ctx, "command finished", "args", args, "exit", out.ExitCode)
	return out, nil
}
