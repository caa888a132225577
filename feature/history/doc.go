// Package history records pipeline runs and archives in a relational catalog.
//
// The catalog is optional. It is backed by gorm, so the same Store works with
// a local sqlite file or a shared MySQL server (see core/database).
package history
