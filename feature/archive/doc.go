// Package archive keeps dated copies of the published artifacts.
//
// Archives live under <archive_dir>/<year>/<month>/<version>/ with an
// archive-metadata.json describing the capture. A period captures a given
// version once; archiving it again is a no-op unless forced. Archives can
// also be published to object storage under the same relative layout.
package archive
