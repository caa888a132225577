// Package pipeline runs the build stages in order and wires them to the
// workspace, the previous snapshot source, object storage and the history
// catalog.
//
// A full run aggregates the records, writes the canonical database, then
// optimizes, indexes and validates it, writes the changelog and archives the
// result. Index building and model validation run concurrently over the
// optimized database; every other stage runs after the one before it has
// finished writing.
//
// Each stage is also exposed on its own so the CLI can run it against the
// artifacts of a previous build.
package pipeline
