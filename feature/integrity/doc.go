// Package integrity validates a font database and its distribution artifacts.
//
// Validation never fails on bad data. Every problem becomes an entry in the
// report, and the report passes iff it holds no errors.
//
// # Checks Provided
//
//   - Database: required fields, family totals, categories, variants, weights,
//     styles and the download location of every variant.
//   - Previews: decompression and SVG well-formedness, with an error rate.
//   - Files: required and optional artifacts.
//   - Indexes: structure of the three index files and their counts.
//   - Checksums: every listed file exists and matches its SHA-256 digest.
//   - Compressed: the .gz artifact decodes to the optimized database.
//   - Sizes: database size and compression ratio thresholds.
//
// Model checks only read the database, so the pipeline runs them next to the
// index builder. Artifact checks run once every file has been written.
package integrity
