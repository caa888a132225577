package artifact

// Config holds the locations the pipeline reads from and writes to.
type Config struct {
	// WorkDir is the directory all artifacts are written to.
	WorkDir string `mapstructure:"work_dir" default:"."`
	// InputFile is the per-variant record document produced by the extractor.
	InputFile string `mapstructure:"input_file" default:"font-records.json"`
	// PreviewsFile maps family names to rendered SVG previews. Optional.
	PreviewsFile string `mapstructure:"previews_file" default:""`
	// PreviousFile is a local copy of the previously published database. Optional.
	PreviousFile string `mapstructure:"previous_file" default:""`
	// ArchiveDir is the root of the dated archives, relative to WorkDir.
	ArchiveDir string `mapstructure:"archive_dir" default:"archives"`
	// MetricsFile receives the run counters in Prometheus text format. Optional.
	MetricsFile string `mapstructure:"metrics_file" default:""`
}
