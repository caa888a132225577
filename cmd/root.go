package cmd

import (
	"fmt"
	"os"

	"fontdb/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir string
	workDir   string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "fontdb",
	Short: "Font catalog build pipeline",
	Long: `fontdb turns per-variant font records into a published font catalog.
It aggregates, optimizes, indexes, validates, diffs and archives the catalog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with ISO8601 timestamps reads best for a CLI tool
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding the .env file")
	RootCmd.PersistentFlags().StringVar(&workDir, "work-dir", "", "Override pipeline.work_dir")
}
