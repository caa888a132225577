package pipeline

import (
	"fontdb/core/artifact"
	"fontdb/feature/integrity"
)

// Config is the pipeline section of the application configuration.
type Config struct {
	Files  artifact.Config  `mapstructure:",squash"`
	Checks integrity.Config `mapstructure:",squash"`
}
