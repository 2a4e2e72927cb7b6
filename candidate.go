package cratefix

import (
	"iter"
	"regexp"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rhansen/cratefix/internal/itertools"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsCandidate reports whether name may be reported as a crate to install: it must be a plain
// identifier (no "::" path separator), and it must not be reserved (see [IsReserved]).
func IsCandidate(name string) bool {
	return !strings.Contains(name, "::") && identifierRe.MatchString(name) && !IsReserved(name)
}

// collect filters names through [IsCandidate] and returns the distinct survivors in lexicographic
// order.  The result is never nil.
func collect(names iter.Seq[string]) []string {
	set := mapset.NewThreadUnsafeSet[string]()
	for name := range itertools.Filter(names, IsCandidate) {
		set.Add(name)
	}
	ret := set.ToSlice()
	slices.Sort(ret)
	return ret
}
