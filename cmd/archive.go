package cmd

import (
	"fmt"
	"time"

	"fontdb/core/artifact"
	"fontdb/feature/archive"
	"fontdb/feature/history"

	"github.com/spf13/cobra"
)

var (
	forceFlag bool
	listFlag  bool
)

// archiveCmd copies the release artifacts into a dated archive.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive the current release artifacts",
	Long: `Copies the release artifacts into archives/YYYY/MM/<version>/ with a
metadata file. An existing archive of the same version is kept unless --force
is given. With --list the existing archives are listed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if listFlag {
			entries, err := a.pipeline.Archiver().List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.print("No archives")
			}
			for _, e := range entries {
				a.print(e.String())
			}
			if a.publisher != nil {
				keys, err := a.publisher.Published(cmd.Context())
				if err != nil {
					return err
				}
				a.print(fmt.Sprintf("Published: %d archives", len(keys)))
				for _, k := range keys {
					a.print("  " + k)
				}
			}
			return nil
		}

		version := archive.VersionOf(a.pipeline.Workspace(), artifact.CanonicalDatabase)
		res, err := a.pipeline.Archive(cmd.Context(), history.NewRunID(), version, forceFlag)
		if err != nil {
			return err
		}
		if res.Skipped {
			a.print(fmt.Sprintf("Archive %s already exists, use --force to overwrite", res.Key))
			if a.history != nil {
				last, err := a.history.LastArchive(cmd.Context(), version)
				if err != nil {
					return err
				}
				if last != nil {
					a.print(fmt.Sprintf("Recorded by run %s at %s", last.RunID, last.ArchivedAt.Format(time.RFC3339)))
				}
			}
			return nil
		}
		a.print(fmt.Sprintf("Archived %d files to %s", res.Metadata.FileCount, res.Metadata.ArchivePath))
		for _, name := range res.Missing {
			a.print("  missing " + name)
		}
		return nil
	},
}

func init() {
	archiveCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing archive")
	archiveCmd.Flags().BoolVar(&listFlag, "list", false, "List existing archives")
	RootCmd.AddCommand(archiveCmd)
}
