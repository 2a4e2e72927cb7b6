package cratefix_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/rhansen/cratefix"
)

func TestExtractMissing(t *testing.T) {
	for _, tc := range []struct {
		desc string
		text string
		want []string
	}{
		{
			desc: "empty",
			text: "",
			want: []string{},
		},
		{
			desc: "clean build",
			text: "    Checking demo v0.1.0 (/tmp/demo)\n    Finished `dev` profile [unoptimized + debuginfo] target(s) in 0.31s\n",
			want: []string{},
		},
		{
			desc: "undeclared crate or module",
			text: "error: use of undeclared crate or module `foo`",
			want: []string{"foo"},
		},
		{
			desc: "failed to resolve",
			text: "error[E0433]: failed to resolve: use of undeclared crate or module `rand`",
			want: []string{"rand"},
		},
		{
			desc: "unresolved import",
			text: "error[E0432]: unresolved import `bar`",
			want: []string{"bar"},
		},
		{
			desc: "unresolved import of a qualified path is rejected",
			text: "error[E0432]: unresolved import `bar::baz`",
			want: []string{},
		},
		{
			desc: "no external crate",
			text: "error[E0463]: no external crate `chrono`",
			want: []string{"chrono"},
		},
		{
			desc: "extern crate not found",
			text: "error: extern crate `libc` not found",
			want: []string{"libc"},
		},
		{
			desc: "maybe a missing crate",
			text: "  = help: you might be missing a crate; maybe a missing crate `regex`?",
			want: []string{"regex"},
		},
		{
			desc: "consider adding extern crate",
			text: "help: consider adding `extern crate log;` to use the `log` crate",
			want: []string{"log"},
		},
		{
			desc: "consider importing takes the first segment",
			text: "help: consider importing this struct: `serde::Serialize`",
			want: []string{"serde"},
		},
		{
			desc: "consider importing a deep path",
			text: "help: consider importing this function: `tokio::time::sleep`",
			want: []string{"tokio"},
		},
		{
			desc: "reserved names are dropped",
			text: "error: use of undeclared crate or module `std`\n" +
				"help: consider importing this struct: `std::collections::HashMap`\n" +
				"error[E0432]: unresolved import `crate`\n",
			want: []string{},
		},
		{
			desc: "qualified capture is dropped",
			text: "error: use of undeclared crate or module `a::b`",
			want: []string{},
		},
		{
			desc: "non-identifier capture is dropped",
			text: "error: use of undeclared crate or module `foo-bar`\nerror: no external crate `foo bar`",
			want: []string{},
		},
		{
			desc: "two rules capturing the same name",
			text: "error[E0433]: failed to resolve: use of undeclared crate or module `foo`\n" +
				"error[E0432]: unresolved import `foo`\n",
			want: []string{"foo"},
		},
		{
			desc: "full cargo check output",
			text: `error[E0432]: unresolved import ` + "`regex`" + `
 --> src/main.rs:1:5
  |
1 | use regex::Regex;
  |     ^^^^^ use of undeclared crate or module ` + "`regex`" + `

error[E0433]: failed to resolve: use of undeclared crate or module ` + "`serde_json`" + `
 --> src/main.rs:9:13
  |
9 |     let v = serde_json::from_str::<u32>("1");
  |             ^^^^^^^^^^ use of undeclared crate or module ` + "`serde_json`" + `

error[E0412]: cannot find type ` + "`Value`" + ` in this scope
  |
help: consider importing this enum
  |
1 + use anyhow::Value;
  |
help: consider importing this struct: ` + "`chrono::DateTime`" + `

error: could not compile ` + "`demo`" + ` (bin "demo") due to 3 previous errors
`,
			want: []string{"chrono", "regex", "serde_json"},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			got := ExtractMissing(tc.text)
			if got == nil {
				t.Errorf("got nil, want non-nil")
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected crates (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractMissing_Idempotent(t *testing.T) {
	text := "error: use of undeclared crate or module `foo`\n" +
		"help: consider importing this struct: `serde::Serialize`\n"
	first := ExtractMissing(text)
	second := ExtractMissing(text)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"foo", "serde"}, first); diff != "" {
		t.Errorf("unexpected crates (-want +got):\n%s", diff)
	}
}
