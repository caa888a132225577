package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists recorded pipeline runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent pipeline runs from the history catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if a.history == nil {
			return errors.New("history catalog is not configured (set DATABASE_ENABLED=true)")
		}
		runs, err := a.history.ListRuns(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		for _, r := range runs {
			a.print(fmt.Sprintf("%s  %s  %-4s  %d families  %d errors  %d warnings  %s",
				r.StartedAt.Format("2006-01-02 15:04"), r.Version, r.Status,
				r.Families, r.Errors, r.Warnings, r.Duration().Round(time.Millisecond)))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")
	RootCmd.AddCommand(historyCmd)
}
