// Package exprjson parses a single Rust-style expression and converts it to
// a canonical JSON document.
//
// The expression grammar is modeled structurally: operators, literals,
// calls, control flow and so on become tagged objects with fixed key sets.
// Blocks, patterns, types, macro arguments and attributes are deliberately
// not modeled; they are carried as token runs and rendered to single-spaced
// text, so their original spacing and comments are not recoverable from the
// output.
package exprjson
