// Package cratefix finds the crates a Rust package uses but has not declared, and adds them with
// "cargo add".
//
// Discovery happens in two independent stages:
//
//  1. [ExtractImports] reads the use declarations at the start of each line of a source file and
//     keeps the first path segment of each.
//  2. [ExtractMissing] runs a battery of patterns over compiler diagnostics (from
//     [Toolchain.Check], or [Toolchain.Compile] if cargo cannot be run) to find crates the compiler
//     could not resolve.
//
// Both stages drop standard library names, primitive types, and path keywords (see [IsReserved])
// and return sorted names without duplicates.  [Remediator] ties the stages together with
// installation and reporting.
//
// Nothing here parses Rust: the matching is line-anchored and textual, so a use declaration inside
// a block comment still counts, and one preceded by "pub" or indentation does not.
package cratefix
