package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/amterp/color"
	"github.com/rhansen/cratefix"
	"github.com/rhansen/cratefix/internal/logging"
)

type config struct {
	source string
}

func ver() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "(devel)" {
		return ""
	}
	return bi.Main.Version
}

var slogLevel = logging.Setup(os.Stderr)

func choiceFlag[T any](p *T, name string, choices map[string]T, dflt string, usage string) {
	cstr := strings.Join(slices.Sorted(maps.Keys(choices)), ", ")
	var ok bool
	if *p, ok = choices[dflt]; !ok {
		panic(fmt.Errorf("invalid default for %v option: %v", dflt, name))
	}
	usage += fmt.Sprintf(" (one of: %v; default: %v)", cstr, dflt)
	flag.Func(name, usage, func(arg string) error {
		if arg == "" {
			arg = dflt
		}
		v, ok := choices[arg]
		if !ok {
			return fmt.Errorf("expected one of: %v", cstr)
		}
		*p = v
		return nil
	})
}

func parseFlags() *config {
	cfg := &config{}

	bumpLogLevel := func(lower bool) {
		slog.Debug("log level pre-change", "level", slogLevel.Level())
		slogLevel.Set(logging.BumpLevel(slogLevel.Level(), lower))
		slog.Debug("log level post-change", "level", slogLevel.Level())
	}
	setLogLevel := func(arg string) error {
		lvl, err := logging.StringToLevel(arg)
		if err != nil {
			return err
		}
		slogLevel.Set(lvl)
		return nil
	}
	verbosity := func(lower bool) func(string) error {
		return func(arg string) error {
			switch arg {
			case "", "true":
				bumpLogLevel(lower)
			default:
				return setLogLevel(arg)
			}
			return nil
		}
	}
	flag.BoolFunc("v", "Increase log verbosity.", verbosity(true))
	flag.BoolFunc("q", "Decrease log verbosity.", verbosity(false))

	colorChoices := map[string]bool{
		"auto":   color.NoColor,
		"never":  true,
		"always": false,
	}
	choiceFlag(&color.NoColor, "color", colorChoices, "auto",
		"Output colors according to `mode`.")
	help := func(string) error {
		flag.CommandLine.SetOutput(os.Stdout)
		flag.Usage()
		os.Exit(0)
		return nil
	}
	helpUsage := "Print usage information and exit."
	flag.BoolFunc("h", helpUsage, help)
	flag.BoolFunc("help", helpUsage, help)
	flag.BoolFunc("version", "Print the version and exit.", func(string) error {
		v := ver()
		if v == "" {
			log.Fatal("the Go build information is unavalable; try passing the \"-buildvcs=true\" build option to go")
		}
		fmt.Printf("%s\n", v)
		os.Exit(0)
		return nil
	})
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] [source]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(),
			"Finds the crates a Cargo package uses but does not declare and adds them with \"cargo add\".\n"+
				"source defaults to the package's main source file.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	switch args := flag.Args(); len(args) {
	case 0:
	case 1:
		cfg.source = args[0]
	default:
		log.Fatal("at most one source file may be given")
	}
	return cfg
}

// newRemediator locates the Cargo package enclosing the working directory and prepares to work on
// it.  Without a Cargo.toml the working directory is treated as the package root.
func newRemediator(ctx context.Context, cfg *config) *cratefix.Remediator {
	r := &cratefix.Remediator{Out: os.Stdout, Err: os.Stderr}
	var m *cratefix.Manifest
	if path, ok, err := cratefix.FindManifest("."); err != nil {
		slog.WarnContext(ctx, "failed to search for the package manifest", "error", err)
	} else if ok {
		r.Dir = filepath.Dir(path)
		if m, err = cratefix.LoadManifest(path); err != nil {
			slog.WarnContext(ctx, "ignoring unreadable package manifest", "error", err)
		}
	}
	if r.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			slog.WarnContext(ctx, "failed to get the working directory", "error", err)
			wd = "."
		}
		r.Dir = wd
	}
	r.Source = m.MainSource()
	r.Edition = m.Edition()
	if cfg.source != "" {
		if abs, err := filepath.Abs(cfg.source); err == nil {
			r.Source = abs
		} else {
			r.Source = cfg.source
		}
	}
	slog.DebugContext(ctx, "package located", "dir", r.Dir, "source", r.Source, "edition", r.Edition)
	return r
}

func banner(r *cratefix.Remediator) {
	p := r.Source
	if !filepath.IsAbs(p) {
		p = r.Dir + string(filepath.Separator) + p
	}
	fmt.Printf("PATH for %s: %s\n", runtime.GOOS, p)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := parseFlags()
	r := newRemediator(ctx, cfg)
	banner(r)
	r.Run(ctx)
}
