package cmd

import (
	"fmt"

	"fontdb/core/artifact"
	"fontdb/feature/pipeline"

	"github.com/spf13/cobra"
)

var validateJSON bool

// validateCmd checks the catalog and its artifacts and writes the report.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the catalog and its artifacts",
	Long: `Checks the database structure, variant fields, previews, indexes,
statistics, checksums, compressed artifact and sizes. Writes the validation
report and exits non-zero when any error is found. Outputs a summary by
default or the full report with --json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		db, err := a.pipeline.LoadCurrent()
		if err != nil {
			return err
		}
		report, err := a.pipeline.Validate(db)
		if err != nil {
			return err
		}

		if validateJSON {
			data, err := artifact.Encode(report, artifact.Indented)
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			a.print(string(data))
		} else {
			a.print(fmt.Sprintf("Status: %s", report.OverallStatus),
				fmt.Sprintf("Errors: %d, warnings: %d, info: %d", report.Errors, report.Warnings, report.InfoMessages))
			for _, msg := range report.Details.Errors {
				a.print("  ERROR " + msg)
			}
			for _, msg := range report.Details.Warnings {
				a.print("  WARN  " + msg)
			}
		}

		if !report.Passed() {
			return fmt.Errorf("%w: %d errors", pipeline.ErrValidationFailed, report.Errors)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the full report as JSON")
	RootCmd.AddCommand(validateCmd)
}
