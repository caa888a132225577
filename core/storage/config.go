package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Enabled turns on object storage for previous snapshots and archive publishing.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding published databases.
	Bucket string `mapstructure:"bucket" default:"fonts"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PreviousObject is the key of the previously published canonical database.
	PreviousObject string `mapstructure:"previous_object" default:"latest/font-database.json"`
	// ArchivePrefix is the key prefix archives are published under.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"archives"`
}
