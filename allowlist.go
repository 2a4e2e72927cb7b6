package cratefix

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// reserved holds the names that are never treated as installable crates: the standard library
// crates and top-level modules, the primitive types, and the path keywords self, super, and crate.
// It is populated once and never modified.
var reserved = mapset.NewThreadUnsafeSet(
	// Standard library crates.
	"std", "core", "alloc", "proc_macro", "test",
	// Standard library modules.
	"collections", "env", "fs", "io", "net", "path", "process", "sync", "thread", "time", "fmt",
	"mem", "ptr", "slice", "str", "vec", "hash", "cmp", "ops", "iter", "option", "result", "clone",
	"convert", "default", "drop", "marker", "ascii", "char",
	// Primitive types.
	"f32", "f64", "i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128",
	"usize", "bool", "never", "array", "tuple", "unit",
	// Path keywords.
	"self", "super", "crate",
)

// IsReserved reports whether name belongs to the standard library, is a primitive type, or is one
// of the self, super, and crate path keywords.  Reserved names are never reported as missing
// crates.
func IsReserved(name string) bool {
	return reserved.Contains(name)
}

// ReservedNames returns a sorted copy of the reserved names.
func ReservedNames() []string {
	names := reserved.ToSlice()
	slices.Sort(names)
	return names
}
