package cratefix_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/rhansen/cratefix"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, ManifestName)
	writeFile(t, manifest, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "bin")
	if err := os.MkdirAll(nested, 0777); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{root, nested} {
		got, ok, err := FindManifest(dir)
		if err != nil {
			t.Fatal(err)
		}
		if !ok || got != manifest {
			t.Errorf("FindManifest(%q) = %q, %v; want %q, true", dir, got, ok, manifest)
		}
	}
}

func TestLoadManifest(t *testing.T) {
	for _, tc := range []struct {
		desc        string
		toml        string
		wantName    string
		wantEdition string
		wantSource  string
	}{
		{
			desc:        "minimal",
			toml:        "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n",
			wantName:    "demo",
			wantEdition: DefaultEdition,
			wantSource:  filepath.FromSlash(DefaultSource),
		},
		{
			desc: "edition and dependencies",
			toml: `[package]
name = "demo"
version = "0.1.0"
edition = "2024"

[dependencies]
regex = "1"
`,
			wantName:    "demo",
			wantEdition: "2024",
			wantSource:  filepath.FromSlash(DefaultSource),
		},
		{
			desc: "bin target path",
			toml: `[package]
name = "tool"
edition = "2018"

[[bin]]
name = "tool"

[[bin]]
name = "other"
path = "app/other.rs"
`,
			wantName:    "tool",
			wantEdition: "2018",
			wantSource:  filepath.FromSlash("app/other.rs"),
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, p, tc.toml)
			m, err := LoadManifest(p)
			if err != nil {
				t.Fatal(err)
			}
			if got := m.Package.Name; got != tc.wantName {
				t.Errorf("got name %q, want %q", got, tc.wantName)
			}
			if got := m.Edition(); got != tc.wantEdition {
				t.Errorf("got edition %q, want %q", got, tc.wantEdition)
			}
			if got := m.MainSource(); got != tc.wantSource {
				t.Errorf("got source %q, want %q", got, tc.wantSource)
			}
		})
	}
}

func TestLoadManifest_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, p, "[package\nname = \n")
	if _, err := LoadManifest(p); err == nil || !strings.Contains(err.Error(), p) {
		t.Errorf("got error %v, want a parse error mentioning %s", err, p)
	}
}

func TestNilManifest(t *testing.T) {
	var m *Manifest
	if got, want := m.MainSource(), filepath.FromSlash(DefaultSource); got != want {
		t.Errorf("got source %q, want %q", got, want)
	}
	if got := m.Edition(); got != DefaultEdition {
		t.Errorf("got edition %q, want %q", got, DefaultEdition)
	}
}

func TestDependencySnippet(t *testing.T) {
	got, err := DependencySnippet([]string{"serde", "regex"})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 || lines[0] != "[dependencies]" {
		t.Fatalf("got snippet %q, want a [dependencies] table with two entries", got)
	}
	for _, want := range []string{`regex = "*"`, `serde = "*"`} {
		found := false
		for _, l := range lines[1:] {
			if strings.TrimSpace(l) == want {
				found = true
			}
		}
		if !found {
			t.Errorf("snippet %q lacks line %q", got, want)
		}
	}
}
