package artifact

// Artifact file names, relative to the workspace directory.
const (
	CanonicalDatabase  = "font-database.json"
	OptimizedDatabase  = "font-database-optimized.json"
	CompressedDatabase = "font-database.json.gz"
	FamiliesIndex      = "font-families-index.json"
	CategoriesIndex    = "font-categories-index.json"
	PopularIndex       = "font-popular-index.json"
	Checksums          = "checksums.json"
	ValidationReport   = "validation-report.json"
	Stats              = "stats.json"
	Changelog          = "CHANGELOG.md"
	ReleaseNotes       = "release-changelog.md"
	ArchiveMetadata    = "archive-metadata.json"
)

// IndexFiles are the derived lookup projections.
var IndexFiles = []string{FamiliesIndex, CategoriesIndex, PopularIndex}

// ChecksummedFiles are the distribution files covered by the checksum file.
var ChecksummedFiles = []string{
	OptimizedDatabase,
	CompressedDatabase,
	FamiliesIndex,
	CategoriesIndex,
	PopularIndex,
}

// ArchivedFiles are copied into every dated archive.
var ArchivedFiles = []string{
	CanonicalDatabase,
	OptimizedDatabase,
	CompressedDatabase,
	FamiliesIndex,
	CategoriesIndex,
	PopularIndex,
	Stats,
	Checksums,
	ValidationReport,
	Changelog,
}
