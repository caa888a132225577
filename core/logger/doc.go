// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a human friendly console
// encoding for interactive pipeline runs and a JSON encoding for CI logs.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Pipeline started")
//
//	// Inside a stage:
//	l := logger.ForStage(log, "optimize")
//	l.Warn("Preview recompression failed", zap.String("family", name), zap.Error(err))
package logger
