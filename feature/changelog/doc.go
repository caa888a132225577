// Package changelog compares the previous published database with the
// current one and writes release notes.
//
// The previous snapshot may come from a local file or an object storage key.
// It is optional: without it every current family is new. A snapshot that
// cannot be parsed is reported and treated as absent.
//
// The comparison is a keyed reconciliation of the two family maps. The
// resulting ChangeSet is deterministic and feeds the release notes and the
// cumulative changelog, which keeps one section per version, newest first.
package changelog
