// Package config provides configuration management for fontdb.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Pipeline: workspace paths and validation thresholds (PIPELINE_WORK_DIR, PIPELINE_SAMPLE_SIZE, ...)
//   - Storage: S3/MinIO credentials, bucket, previous snapshot key and archive prefix
//   - Database: optional run history catalog (sqlite or MySQL)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pipeline.Files.WorkDir)
package config
