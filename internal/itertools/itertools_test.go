package itertools_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rhansen/cratefix/internal/itertools"
)

func TestCat(t *testing.T) {
	got := slices.Collect(itertools.Cat(
		slices.Values([]string{"a", "b"}),
		slices.Values([]string(nil)),
		slices.Values([]string{"c"}),
	))
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("unexpected sequence (-want +got):\n%s", diff)
	}
	if got := slices.Collect(itertools.Cat[int]()); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestCat_EarlyExit(t *testing.T) {
	var got []string
	for v := range itertools.Cat(slices.Values([]string{"a", "b"}), slices.Values([]string{"c"})) {
		got = append(got, v)
		if v == "b" {
			break
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("unexpected sequence (-want +got):\n%s", diff)
	}
}

func TestFilterMap(t *testing.T) {
	in := slices.Values([]string{"keep", "drop", "Keep", ""})
	got := slices.Collect(itertools.Map(
		itertools.Filter(in, func(s string) bool { return strings.EqualFold(s, "keep") }),
		strings.ToUpper))
	if diff := cmp.Diff([]string{"KEEP", "KEEP"}, got); diff != "" {
		t.Errorf("unexpected sequence (-want +got):\n%s", diff)
	}
	none := slices.Collect(itertools.Filter(in, func(string) bool { return false }))
	if diff := cmp.Diff([]string{}, none, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected sequence (-want +got):\n%s", diff)
	}
}
