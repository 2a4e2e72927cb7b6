package cratefix

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"regexp"
	"unicode/utf8"
)

// useRe matches a line that starts with a use declaration and captures the first path segment.
var useRe = regexp.MustCompile(`(?m)^use\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

// ErrInvalidUTF8 is wrapped by the error returned from [ReadImports] when the source file is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

// A SourceError is returned when the source file cannot be read or decoded.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ExtractImports returns the crates named by the use declarations in text, in sorted order and
// without duplicates.  Only the first path segment of each declaration is considered, and only
// declarations at the very start of a line are recognized (so "pub use" and indented use
// declarations are ignored).  Names accepted by [IsReserved] are dropped.  The result is empty, not
// nil, if nothing was found.
func ExtractImports(text string) []string {
	return collect(submatches(useRe, text))
}

// ReadImports reads the file at path and passes its contents to [ExtractImports].  Errors are
// returned as a [*SourceError].
func ReadImports(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &SourceError{Path: path, Err: ErrInvalidUTF8}
	}
	names := ExtractImports(string(data))
	slog.Debug("extracted imports", "path", path, "crates", names)
	return names, nil
}

// submatches yields the first capture group of every non-overlapping match of re in text.
func submatches(re *regexp.Regexp, text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if !yield(m[1]) {
				return
			}
		}
	}
}
