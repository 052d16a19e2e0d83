package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
	"github.com/bhyulljz/rakt-matching/pkg/core/services"
)

// MatchCmd creates the match command
func MatchCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <request_id>",
		Short: "Match donors for one recipient request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			outcome, err := services.MatchRequest(app.Ctx, app.Database, servicePredictor(app), app.Engine, app.Logger, requestID, dryRun)
			if err != nil {
				return err
			}

			printMatchingResponse(outcome.Response, outcome.PredictorUsed)
			if dryRun {
				fmt.Println("(dry run - nothing persisted)")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving the match run")

	return cmd
}

// servicePredictor converts the concrete client to the service interface,
// keeping a nil client as a true nil interface.
func servicePredictor(app *AppContext) services.Predictor {
	if app.Predictor == nil {
		return nil
	}
	return app.Predictor
}

func printMatchingResponse(response *model.MatchingResponse, predictorUsed bool) {
	fmt.Printf("\n✓ Matching complete for %s (%s, %s)\n\n",
		response.RecipientName, response.BloodTypeNeeded, response.Urgency)
	fmt.Printf("Model: %s", response.ModelUsed)
	if predictorUsed {
		fmt.Print(" (external predictor)")
	}
	fmt.Printf("\nMatches found: %d\n\n", response.TotalMatchesFound)

	for i, match := range response.Matches {
		fmt.Printf("%2d. %s (%s) - score %d [%s priority]\n",
			i+1, match.DonorName, match.DonorBloodType, match.CompatibilityScore, match.Priority)
		for _, reason := range match.MatchReasons {
			fmt.Printf("      + %s\n", reason)
		}
		for _, warning := range match.Warnings {
			fmt.Printf("      ! %s\n", warning)
		}
	}
	fmt.Println()
}
