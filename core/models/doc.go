// Package models defines the canonical in-memory representation of the font
// database.
//
// A FontDatabase maps family names to FontFamily entries. Each family holds its
// variants ordered by (weight, style). Where a variant's font file lives is a
// Location: either an AbsoluteURL, or a FamilyFile that only resolves against the
// owning family's BaseURL. The JSON wire format keeps the snake_case keys of the
// published database ("download_url", "filename", "base_url", ...).
//
// Stages never share a model value: a stage that mutates the database works on a
// Clone and returns it.
package models
