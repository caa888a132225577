package integrity

// Config holds the validation thresholds.
type Config struct {
	// SampleSize limits how many families are checked. Zero checks all.
	SampleSize int `mapstructure:"sample_size" default:"0"`
	// PreviewSampleSize limits how many previews are decompressed. Zero checks all.
	PreviewSampleSize int `mapstructure:"preview_sample_size" default:"0"`
	// MaxDatabaseBytes is the canonical database size above which a warning is raised.
	MaxDatabaseBytes int64 `mapstructure:"max_database_bytes" default:"52428800"`
	// InfoDatabaseBytes is the canonical database size above which the size is reported.
	InfoDatabaseBytes int64 `mapstructure:"info_database_bytes" default:"10485760"`
	// MaxCompressionRatio is the compressed to optimized size ratio above which a warning is raised.
	MaxCompressionRatio float64 `mapstructure:"max_compression_ratio" default:"0.8"`
	// PreviewErrorRate is the share of broken previews above which a warning is raised.
	PreviewErrorRate float64 `mapstructure:"preview_error_rate" default:"0.1"`
}

// DefaultConfig returns the thresholds used when none are configured.
func DefaultConfig() Config {
	return Config{
		MaxDatabaseBytes:    50 * 1024 * 1024,
		InfoDatabaseBytes:   10 * 1024 * 1024,
		MaxCompressionRatio: 0.8,
		PreviewErrorRate:    0.1,
	}
}
