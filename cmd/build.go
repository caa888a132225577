package cmd

import (
	"github.com/spf13/cobra"
)

var forceArchive bool

// buildCmd runs every stage in order.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full catalog pipeline",
	Long: `Aggregates the records, optimizes the catalog, writes the indexes,
checksums and statistics, validates everything, then writes the changelog
and archives the release. A failed validation stops before the changelog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sum, err := a.pipeline.Run(cmd.Context(), forceArchive)
		if sum != nil {
			a.print(sum.Lines()...)
		}
		return err
	},
}

func init() {
	buildCmd.Flags().BoolVar(&forceArchive, "force-archive", false, "Overwrite an existing archive of the same version")
	RootCmd.AddCommand(buildCmd)
}
