package cratefix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/amterp/color"
	"github.com/rhansen/cratefix/internal/command"
)

var (
	boldf  = color.New(color.Bold).SprintfFunc()
	greenf = color.New(color.FgGreen).SprintfFunc()
	redf   = color.New(color.FgRed).SprintfFunc()
	cyanf  = color.New(color.FgCyan).SprintfFunc()
)

// A Remediator finds the crates a package is missing and tries to add them with "cargo add".
//
// Source is the path of the file to scan, relative to [Toolchain.Dir] unless absolute.  Edition is
// passed to rustc on the fallback path.  Results are written to Out and problems to Err.
type Remediator struct {
	Toolchain
	Source  string
	Edition string
	Out     io.Writer
	Err     io.Writer
}

func (r *Remediator) sourcePath() string {
	if filepath.IsAbs(r.Source) || r.Dir == "" {
		return r.Source
	}
	return filepath.Join(r.Dir, r.Source)
}

func (r *Remediator) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...)
}

func (r *Remediator) errorf(format string, args ...any) {
	fmt.Fprint(r.Err, redf(format, args...)+"\n")
}

func (r *Remediator) list(names []string) {
	for _, n := range names {
		r.printf("  - %s\n", n)
	}
}

// Run scans the source file's use declarations and installs every crate found, then asks Cargo
// for diagnostics, reports the crates they show to be missing, and installs those as well.  If
// Cargo cannot be run, rustc is run directly on the source file instead and its findings are
// reported without installing anything.
//
// Each stage reports and installs on its own, so a crate found by both is installed twice.  Run
// never fails; every problem is written to r.Err and the next stage proceeds.
func (r *Remediator) Run(ctx context.Context) {
	r.printf("Analyzing missing crates in %s...\n\n", filepath.Base(r.Source))
	r.remediateImports(ctx)
	r.remediateDiagnostics(ctx)
}

func (r *Remediator) remediateImports(ctx context.Context) {
	names, err := ReadImports(r.sourcePath())
	if err != nil {
		r.errorf("Error reading source file: %v", err)
		return
	}
	if len(names) == 0 {
		slog.DebugContext(ctx, "no crates found in use declarations", "source", r.Source)
		return
	}
	r.printf("%s\n", boldf("Crates found in use statements:"))
	r.list(names)
	r.printf("\nAttempting to install crates...\n")
	r.install(ctx, names)
	r.printf("\n")
}

func (r *Remediator) remediateDiagnostics(ctx context.Context) {
	text, err := r.Check(ctx)
	if err != nil {
		r.errorf("Error analyzing crates: %v", err)
		var startErr *command.StartError
		if errors.As(err, &startErr) {
			r.fallback(ctx)
		}
		return
	}
	names := ExtractMissing(text)
	r.report(names)
	if len(names) == 0 {
		return
	}
	r.suggest(ctx, names)
	r.printf("%s\n", boldf("Additional missing crates found from compilation errors:"))
	r.list(names)
	r.printf("\nAttempting to install additional crates...\n")
	r.install(ctx, names)
}

// fallback is used only when cargo could not be launched.  It reports what rustc finds but does
// not install anything.
func (r *Remediator) fallback(ctx context.Context) {
	r.printf("\nTrying alternative method with rustc...\n")
	text, err := r.Compile(ctx, r.Source, r.Edition)
	if err != nil {
		r.errorf("Alternative method also failed: %v", err)
		return
	}
	r.report(ExtractMissing(text))
}

func (r *Remediator) report(names []string) {
	if len(names) == 0 {
		r.printf("%s\n", greenf("No missing crates found!"))
		return
	}
	r.printf("%s\n", boldf("Missing crates that need to be installed:"))
	r.list(names)
}

func (r *Remediator) suggest(ctx context.Context, names []string) {
	r.printf("\nTo install these crates, add them to your %s:\n", ManifestName)
	if snippet, err := DependencySnippet(names); err != nil {
		slog.WarnContext(ctx, "failed to render dependency snippet", "error", err)
	} else {
		r.printf("%s", cyanf("%s", snippet))
	}
	r.printf("\nOr run these commands:\n")
	for _, n := range names {
		r.printf("%s\n", cyanf("cargo add %s", n))
	}
	r.printf("\n")
}

// install runs "cargo add" for each name in turn.  A failure is reported and does not stop the
// remaining names from being tried.
func (r *Remediator) install(ctx context.Context, names []string) {
	for _, n := range names {
		r.printf("Installing %s...\n", n)
		var addErr *AddError
		var startErr *command.StartError
		switch err := r.Add(ctx, n); {
		case err == nil:
			r.printf("%s\n", greenf("✓ Successfully installed %s", n))
		case errors.As(err, &addErr):
			r.printf("%s\n", redf("✗ Failed to install %s: %s", n, addErr.Stderr))
		case errors.As(err, &startErr):
			r.printf("%s\n", redf("✗ Error running cargo add for %s: %v", n, startErr.Err))
		default:
			r.printf("%s\n", redf("✗ Error running cargo add for %s: %v", n, err))
		}
	}
}
