package cratefix

import (
	"context"
	"iter"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/rhansen/cratefix/internal/itertools"
	"github.com/rhansen/cratefix/internal/logging"
)

// A qualifiedPolicy says what happens to a captured name that is a multi-segment path.
type qualifiedPolicy int

const (
	// rejectQualified drops the capture entirely.
	rejectQualified qualifiedPolicy = iota
	// firstSegment keeps the segment before the first "::".
	firstSegment
)

// A missingRule recognizes one kind of compiler message that names a crate that could not be found.
// The pattern has exactly one capture group, which yields the crate name.
type missingRule struct {
	desc      string
	re        *regexp.Regexp
	qualified qualifiedPolicy
}

// missingRules are written against the human-readable diagnostics emitted by rustc and cargo.
// Every rule is applied to the full text; the results are unioned.
//
// The "unresolved import" rule refuses a qualified path (`a::b` does not match at all) while the
// "consider importing" rule takes the leading segment of one.
var missingRules = []missingRule{
	{
		desc:      "undeclared crate or module",
		re:        regexp.MustCompile("use of undeclared crate or module `([^`]+)`"),
		qualified: rejectQualified,
	},
	{
		desc:      "failed to resolve",
		re:        regexp.MustCompile("failed to resolve: use of undeclared crate or module `([^`]+)`"),
		qualified: rejectQualified,
	},
	{
		desc:      "unresolved import",
		re:        regexp.MustCompile("unresolved import `([^`:]+)`"),
		qualified: rejectQualified,
	},
	{
		desc:      "no external crate",
		re:        regexp.MustCompile("no external crate `([^`]+)`"),
		qualified: rejectQualified,
	},
	{
		desc:      "extern crate not found",
		re:        regexp.MustCompile("extern crate `([^`]+)` not found"),
		qualified: rejectQualified,
	},
	{
		desc:      "maybe a missing crate",
		re:        regexp.MustCompile("maybe a missing crate `([^`]+)`\\?"),
		qualified: rejectQualified,
	},
	{
		desc:      "consider adding extern crate",
		re:        regexp.MustCompile("consider adding `extern crate ([^;`]+);`"),
		qualified: rejectQualified,
	},
	{
		desc:      "consider importing",
		re:        regexp.MustCompile("help: consider importing this.*?`([^`:]+)::"),
		qualified: firstSegment,
	},
}

func (r *missingRule) captures(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for name := range submatches(r.re, text) {
			switch r.qualified {
			case rejectQualified:
				if strings.Contains(name, "::") {
					continue
				}
			case firstSegment:
				name, _, _ = strings.Cut(name, "::")
			}
			slog.Log(context.Background(), logging.LevelTrace, "diagnostic rule matched",
				"rule", r.desc, "name", name)
			if !yield(name) {
				return
			}
		}
	}
}

// ExtractMissing scans compiler diagnostics for messages that name a crate that could not be
// resolved and returns those crate names in sorted order without duplicates.  Names accepted by
// [IsReserved] and qualified paths that a rule does not reduce to a single segment are dropped.
// Text without any such message yields an empty (non-nil) result.
func ExtractMissing(text string) []string {
	seqs := slices.Collect(itertools.Map(slices.Values(missingRules),
		func(r missingRule) iter.Seq[string] { return r.captures(text) }))
	return collect(itertools.Cat(seqs...))
}
