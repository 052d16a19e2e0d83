package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListDonorsCmd creates the listDonors command
func ListDonorsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listDonors",
		Short: "List all registered donors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			donors, err := app.Database.GetDonors(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list donors: %w", err)
			}

			fmt.Printf("\nFound %d donors:\n\n", len(donors))
			for _, donor := range donors {
				lastDonation := "never donated"
				if donor.LastDonationDate != nil {
					lastDonation = fmt.Sprintf("last donated %s", donor.LastDonationDate.Format("2006-01-02"))
				}
				fmt.Printf("- %s (%s) - %s - %s - %d donations, %s\n",
					donor.Name,
					donor.ID,
					donor.BloodType,
					donor.Location,
					donor.TotalDonations,
					lastDonation,
				)
			}

			return nil
		},
	}
}
