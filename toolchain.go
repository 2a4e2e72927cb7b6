package cratefix

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rhansen/cratefix/internal/command"
)

// A Toolchain runs the Cargo and rustc commands used to diagnose and install missing crates.
// Commands run in Dir.  Cargo and Rustc name the programs; empty means "cargo" and "rustc" found
// via the search path.
type Toolchain struct {
	Dir   string
	Cargo string
	Rustc string
}

func (tc *Toolchain) cargo() string {
	if tc.Cargo == "" {
		return "cargo"
	}
	return tc.Cargo
}

func (tc *Toolchain) rustc() string {
	if tc.Rustc == "" {
		return "rustc"
	}
	return tc.Rustc
}

// Check runs "cargo check" and returns its diagnostics: the stderr text followed by a newline and
// the stdout text.  The exit status of cargo is ignored.  The returned error is a
// [*command.StartError] if cargo could not be run.
func (tc *Toolchain) Check(ctx context.Context) (string, error) {
	out, err := command.Capture(ctx, tc.Dir, tc.cargo(), "check", "--message-format=human")
	if err != nil {
		return "", err
	}
	return string(out.Stderr) + "\n" + string(out.Stdout), nil
}

// Compile runs rustc directly on the single source file at source (relative to Dir), compiled as a
// binary crate of the given edition without linking, and returns its stderr text.  The exit status
// of rustc is ignored.  The returned error is a [*command.StartError] if rustc could not be run.
func (tc *Toolchain) Compile(ctx context.Context, source, edition string) (_ string, retErr error) {
	if edition == "" {
		edition = DefaultEdition
	}
	// rustc writes the crate metadata somewhere even when it is not linking.  Keep that out of the
	// user's tree.
	tmp, err := os.MkdirTemp("", "cratefix-rustc-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if err := os.RemoveAll(tmp); retErr == nil && err != nil {
			retErr = fmt.Errorf("failed to remove %s: %w", tmp, err)
		}
	}()
	out, err := command.Capture(ctx, tc.Dir, tc.rustc(),
		"--error-format=human",
		"--crate-type=bin",
		"--edition="+edition,
		"--emit=metadata",
		"--out-dir", tmp,
		source)
	if err != nil {
		return "", err
	}
	return string(out.Stderr), nil
}

// An AddError is returned by [Toolchain.Add] when "cargo add" ran but did not succeed.
type AddError struct {
	Name     string
	ExitCode int
	// Stderr is the error output of cargo with surrounding whitespace removed.
	Stderr string
}

func (e *AddError) Error() string {
	return fmt.Sprintf("cargo add %s exited with status %d: %s", e.Name, e.ExitCode, e.Stderr)
}

// Add runs "cargo add" for the named crate.  The returned error is an [*AddError] if cargo ran and
// exited with a non-zero status, or a [*command.StartError] if cargo could not be run.
func (tc *Toolchain) Add(ctx context.Context, name string) error {
	out, err := command.Capture(ctx, tc.Dir, tc.cargo(), "add", name)
	if err != nil {
		return err
	}
	if !out.Success() {
		return &AddError{
			Name:     name,
			ExitCode: out.ExitCode,
			Stderr:   strings.TrimSpace(string(out.Stderr)),
		}
	}
	return nil
}
