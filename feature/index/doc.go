// Package index derives the read-optimized lookup files from a database.
//
// Three projections are produced: the sorted family list, the family names
// grouped by category and the families ranked by variant count. Each is a pure
// function of the database and encodes to the same bytes for the same input.
package index
