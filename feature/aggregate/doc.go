// Package aggregate merges per-variant font records into the canonical
// database.
//
// Records are produced upstream, one per font file, keyed by the file's
// path relative to the font corpus. Numeric fields are accepted as numbers
// or strings. Missing weights, styles, categories and licenses are inferred
// from the subfamily name and the path.
package aggregate
