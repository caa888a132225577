package cmd

import (
	"fmt"

	"fontdb/core/utils"
	"fontdb/feature/changelog"

	"github.com/spf13/cobra"
)

var printNotes bool

// changelogCmd diffs the current catalog against the previous release.
var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Write release notes against the previous catalog",
	Long: `Compares the current catalog with the previously published one and
writes the release notes and the cumulative changelog.

The previous catalog is read from object storage when storage is enabled,
otherwise from pipeline.previous_file. Without either every family is new.

Examples:
  # Write the changelog files
  changelog

  # Also print the release notes
  changelog --print`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		current, err := a.pipeline.LoadCurrent()
		if err != nil {
			return err
		}
		cs, err := a.pipeline.Changelog().Generate(cmd.Context(), current)
		if err != nil {
			return err
		}

		if printNotes {
			a.print(changelog.ReleaseNotes(cs))
			return nil
		}
		a.print(
			fmt.Sprintf("Version %s (previous %s)", cs.CurrentVersion, orNone(cs.PreviousVersion)),
			fmt.Sprintf("Families: %s (%s)", utils.Count(cs.CurrentTotal), utils.Signed(cs.NetChange())),
			fmt.Sprintf("New: %d, updated: %d, removed: %d",
				len(cs.NewFamilies), len(cs.UpdatedFamilies), len(cs.RemovedFamilies)),
		)
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func init() {
	changelogCmd.Flags().BoolVar(&printNotes, "print", false, "Print the release notes")
	RootCmd.AddCommand(changelogCmd)
}
