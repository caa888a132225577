package cmd

import (
	"fmt"

	"fontdb/core/artifact"
	"fontdb/core/utils"

	"github.com/spf13/cobra"
)

// aggregateCmd builds the canonical database from the record file.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Build the canonical database from extracted records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		db, res, err := a.pipeline.Aggregate(cmd.Context())
		if err != nil {
			return err
		}
		a.print(
			fmt.Sprintf("Version %s", db.Version),
			fmt.Sprintf("Records: %s (%s skipped, %s duplicates)",
				utils.Count(res.Records), utils.Count(res.Skipped), utils.Count(res.Duplicates)),
			fmt.Sprintf("Families: %s, variants: %s", utils.Count(db.TotalFamilies), utils.Count(db.VariantCount())),
		)
		return nil
	},
}

// optimizeCmd writes the optimized and compressed databases.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize the canonical database for distribution",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		db, err := a.pipeline.LoadDatabase(artifact.CanonicalDatabase)
		if err != nil {
			return err
		}
		_, res, err := a.pipeline.Optimize(db)
		if err != nil {
			return err
		}
		a.print(
			fmt.Sprintf("Fields elided: %s", utils.Count(res.FieldsElided())),
			fmt.Sprintf("Families with collapsed sizes: %s", utils.Count(res.SizesCollapsed)),
			fmt.Sprintf("Previews recompressed: %s", utils.Count(res.PreviewsRecompressed)),
			fmt.Sprintf("Size: %s -> %s (%s saved)",
				utils.Bytes(int64(res.BytesBefore)), utils.Bytes(int64(res.BytesAfter)), utils.Bytes(int64(res.BytesSaved()))),
		)
		if res.BytesBefore > 0 {
			a.print("Reduction: " + utils.Percent(float64(res.BytesSaved())/float64(res.BytesBefore)))
		}
		return nil
	},
}

// indexCmd writes the index projections and the checksum file.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Write the family, category and popularity indexes",
	Args:  cobra.NoArgs,
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
		set, err := a.pipeline.Index(db)
		if err != nil {
			return err
		}
		if err := a.pipeline.Checksums(); err != nil {
			return err
		}
		a.print(
			fmt.Sprintf("Families indexed: %s", utils.Count(set.Families.Count)),
			fmt.Sprintf("Categories: %d", len(set.Categories.Categories)),
			fmt.Sprintf("Popular entries: %d", len(set.Popular.Popular)),
		)
		return nil
	},
}

// statsCmd writes the statistics of the canonical database.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Compute catalog statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		db, err := a.pipeline.LoadDatabase(artifact.CanonicalDatabase)
		if err != nil {
			return err
		}
		s, err := a.pipeline.Stats(db)
		if err != nil {
			return err
		}
		a.print(s.Summary()...)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(aggregateCmd)
	RootCmd.AddCommand(optimizeCmd)
	RootCmd.AddCommand(indexCmd)
	RootCmd.AddCommand(statsCmd)
}
