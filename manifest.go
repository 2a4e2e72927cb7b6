package cratefix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ManifestName is the file name of a Cargo manifest.
	ManifestName = "Cargo.toml"
	// DefaultSource is the crate root of a binary package that does not list its targets.
	DefaultSource = "src/main.rs"
	// DefaultEdition is used when the manifest does not say which edition the package uses.
	DefaultEdition = "2021"
)

// A Manifest holds the parts of a Cargo.toml that cratefix needs.
type Manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Edition string `toml:"edition"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
		Path string `toml:"path"`
	} `toml:"bin"`
}

// MainSource returns the path, relative to the package root, of the source file to scan: the path
// of the first [[bin]] target that sets one, otherwise [DefaultSource].
func (m *Manifest) MainSource() string {
	if m != nil {
		for _, b := range m.Bin {
			if b.Path != "" {
				return filepath.FromSlash(b.Path)
			}
		}
	}
	return filepath.FromSlash(DefaultSource)
}

// Edition returns the package's Rust edition, or [DefaultEdition] if unset.
func (m *Manifest) Edition() string {
	if m == nil || m.Package.Edition == "" {
		return DefaultEdition
	}
	return m.Package.Edition
}

// FindManifest searches startDir and then each of its parent directories for a Cargo.toml.  The
// boolean result is false if none was found.
func FindManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest parses the Cargo.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	m := &Manifest{}
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return m, nil
}

// DependencySnippet renders a [dependencies] table requiring any version of each named crate,
// suitable for pasting into a Cargo.toml.
func DependencySnippet(names []string) (string, error) {
	deps := make(map[string]string, len(names))
	for _, n := range names {
		deps[n] = "*"
	}
	var buf strings.Builder
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(map[string]map[string]string{"dependencies": deps}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
