package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhyulljz/rakt-matching/pkg/core/services"
)

// MatchAllCmd creates the matchAll command
func MatchAllCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matchAll",
		Short: "Match donors for every active recipient request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.MatchAllRequests(app.Ctx, app.Database, servicePredictor(app), app.Engine, app.Logger, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Batch matching complete: %d matched, %d failed\n\n",
				len(result.Outcomes), len(result.Failures))

			for _, outcome := range result.Outcomes {
				fmt.Printf("  %s: %d matches (model %s)\n",
					outcome.Response.RequestID, outcome.Response.TotalMatchesFound, outcome.Response.ModelUsed)
			}
			for _, failure := range result.Failures {
				fmt.Printf("  ✗ %s: %v\n", failure.RequestID, failure.Err)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving match runs")

	return cmd
}
