package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
)

// CheckPairCmd creates the checkPair command
func CheckPairCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkPair <request_id> <donor_id>",
		Short: "Score a single donor against a recipient request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, donorID := args[0], args[1]

			request, err := app.Database.GetRecipientRequest(app.Ctx, requestID)
			if err != nil {
				return fmt.Errorf("failed to fetch request: %w", err)
			}

			donors, err := app.Database.GetDonors(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch donors: %w", err)
			}

			var donor *model.DonorProfile
			for i := range donors {
				if donors[i].ID == donorID {
					donor = &donors[i]
					break
				}
			}
			if donor == nil {
				return fmt.Errorf("donor %s not found", donorID)
			}

			if app.Predictor != nil {
				prediction, err := app.Predictor.Predict(app.Ctx, *donor, *request)
				if err == nil {
					printPairPrediction(donor, request, prediction.Compatible, prediction.Score, prediction.Warnings, prediction.Reason)
					return nil
				}
				app.Logger.Warn("Predictor unavailable, using local engine", zap.Error(err))
			}

			response := app.Engine.Match(*request, []model.DonorProfile{*donor})
			if len(response.Matches) == 0 {
				printPairPrediction(donor, request, false, 0, nil, "No viable match")
				return nil
			}

			match := response.Matches[0]
			printPairPrediction(donor, request, true, float64(match.CompatibilityScore), match.Warnings, "")
			return nil
		},
	}
}

func printPairPrediction(donor *model.DonorProfile, request *model.RecipientRequest, compatible bool, score float64, warnings []string, reason string) {
	fmt.Printf("\n%s (%s) -> %s (%s)\n\n", donor.Name, donor.BloodType, request.UserName, request.BloodType)
	if !compatible {
		fmt.Printf("  Not compatible")
		if reason != "" {
			fmt.Printf(": %s", reason)
		}
		fmt.Println()
		return
	}

	fmt.Printf("  Compatible, score %.0f\n", score)
	for _, warning := range warnings {
		fmt.Printf("  ! %s\n", warning)
	}
	fmt.Println()
}
