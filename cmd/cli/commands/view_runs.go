package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ViewRunsCmd creates the viewRuns command
func ViewRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewRuns <request_id>",
		Short: "View persisted match runs for a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Database.GetMatchRuns(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch match runs: %w", err)
			}

			fmt.Printf("\nFound %d match runs:\n\n", len(runs))
			for _, run := range runs {
				source := "engine"
				if run.PredictorUsed {
					source = "predictor"
				}
				fmt.Printf("- %s - %s - %s (%s) - %d matches\n",
					run.CreatedAt.Format("2006-01-02 15:04"),
					run.ID,
					run.Strategy,
					source,
					run.TotalMatches,
				)
			}

			return nil
		},
	}
}
