package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bhyulljz/rakt-matching/pkg/core/services"
)

// DonationScheduleCmd creates the donationSchedule command
func DonationScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donationSchedule <donor_id>",
		Short: "Show when a donor can next give blood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			donorID := args[0]
			count, _ := cmd.Flags().GetInt("count")

			donors, err := app.Database.GetDonors(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch donors: %w", err)
			}

			for _, donor := range donors {
				if donor.ID != donorID {
					continue
				}

				schedule, err := services.ComputeDonationSchedule(donor, time.Now(), count)
				if err != nil {
					return err
				}

				fmt.Printf("\nDonation schedule for %s (%s):\n\n", donor.Name, donor.ID)
				if schedule.EligibleNow {
					fmt.Println("  Eligible to donate now.")
				} else {
					fmt.Printf("  Next eligible: %s\n", schedule.NextEligible.Format("2006-01-02"))
				}
				fmt.Println("\n  Upcoming eligible dates:")
				for i, date := range schedule.UpcomingDates {
					fmt.Printf("  %2d. %s\n", i+1, date.Format("2006-01-02 (Monday)"))
				}
				fmt.Println()

				return nil
			}

			return fmt.Errorf("donor %s not found", donorID)
		},
	}

	cmd.Flags().Int("count", 5, "Number of upcoming dates to show")

	return cmd
}
