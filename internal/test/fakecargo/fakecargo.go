// Package fakecargo makes it easy to create stand-in cargo and rustc programs with scripted output
// to facilitate testing without a Rust toolchain.
//
// The fake programs are POSIX shell scripts.  Each invocation appends its arguments (joined by a
// space) to a log that can be read back with [Fake.Calls].
package fakecargo

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type reply struct {
	stdout, stderr string
	exit           int
}

type config struct {
	check   reply
	rustc   reply
	add     map[string]reply
	noCargo bool
	noRustc bool
}

// An Option controls the behavior of the fake programs.
type Option func(*config) error

// Check returns an option that sets what "cargo check" writes and its exit status.
func Check(stdout, stderr string, exit int) Option {
	return func(cfg *config) error {
		cfg.check = reply{stdout, stderr, exit}
		return nil
	}
}

// Rustc returns an option that sets what rustc writes to stderr and its exit status.
func Rustc(stderr string, exit int) Option {
	return func(cfg *config) error {
		cfg.rustc = reply{stderr: stderr, exit: exit}
		return nil
	}
}

// AddFails returns an option that makes "cargo add name" write stderr and exit with a non-zero
// status.  By default "cargo add" succeeds silently for every name.
func AddFails(name, stderr string, exit int) Option {
	return func(cfg *config) error {
		if exit == 0 {
			return fmt.Errorf("exit status for failing cargo add %v must be non-zero", name)
		}
		if strings.ContainsAny(name, "/\x00") {
			return fmt.Errorf("invalid crate name %+q", name)
		}
		cfg.add[name] = reply{stderr: stderr, exit: exit}
		return nil
	}
}

// NoCargo returns an option that leaves cargo uninstalled: [Fake.Cargo] names a program that does
// not exist.
func NoCargo() Option {
	return func(cfg *config) error {
		cfg.noCargo = true
		return nil
	}
}

// NoRustc is like [NoCargo] but for rustc.
func NoRustc() Option {
	return func(cfg *config) error {
		cfg.noRustc = true
		return nil
	}
}

// A Fake is a pair of installed fake programs.
type Fake struct {
	// Cargo and Rustc are absolute paths to the fake programs.
	Cargo string
	Rustc string
	dir   string
}

// Calls returns the recorded invocations in order, one entry per invocation, prefixed with the
// program name ("cargo" or "rustc").
func (f *Fake) Calls(t testing.TB) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, "calls"))
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

const cargoScript = `#!/bin/sh
dir=%s
printf 'cargo %%s\n' "$*" >>"$dir/calls"
case "$1" in
check)
  cat "$dir/check.stderr" >&2
  cat "$dir/check.stdout"
  exit "$(cat "$dir/check.exit")"
  ;;
add)
  if [ -f "$dir/add/$2.exit" ]; then
    cat "$dir/add/$2.stderr" >&2
    exit "$(cat "$dir/add/$2.exit")"
  fi
  exit 0
  ;;
esac
printf 'error: no such command: %%s\n' "$1" >&2
exit 101
`

const rustcScript = `#!/bin/sh
dir=%s
printf 'rustc %%s\n' "$*" >>"$dir/calls"
cat "$dir/rustc.stderr" >&2
exit "$(cat "$dir/rustc.exit")"
`

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// New installs fake cargo and rustc programs in a temporary directory that is removed when the
// test finishes.
func New(t testing.TB, opts ...Option) *Fake {
	t.Helper()
	cfg := &config{add: map[string]reply{}}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			t.Fatal(err)
		}
	}
	dir := t.TempDir()
	files := map[string]string{
		"check.stdout": cfg.check.stdout,
		"check.stderr": cfg.check.stderr,
		"check.exit":   strconv.Itoa(cfg.check.exit),
		"rustc.stderr": cfg.rustc.stderr,
		"rustc.exit":   strconv.Itoa(cfg.rustc.exit),
	}
	for name, r := range cfg.add {
		files[filepath.Join("add", name+".stderr")] = r.stderr
		files[filepath.Join("add", name+".exit")] = strconv.Itoa(r.exit)
	}
	if err := os.Mkdir(filepath.Join(dir, "add"), 0777); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0666); err != nil {
			t.Fatal(err)
		}
	}
	f := &Fake{
		Cargo: filepath.Join(dir, "bin", "cargo"),
		Rustc: filepath.Join(dir, "bin", "rustc"),
		dir:   dir,
	}
	if err := os.Mkdir(filepath.Join(dir, "bin"), 0777); err != nil {
		t.Fatal(err)
	}
	for _, p := range []struct {
		path, script string
		skip         bool
	}{
		{f.Cargo, cargoScript, cfg.noCargo},
		{f.Rustc, rustcScript, cfg.noRustc},
	} {
		if p.skip {
			continue
		}
		script := fmt.Sprintf(p.script, shellQuote(dir))
		if err := os.WriteFile(p.path, []byte(script), 0777); err != nil {
			t.Fatal(err)
		}
	}
	return f
}
