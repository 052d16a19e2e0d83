package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListRequestsCmd creates the listRequests command
func ListRequestsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listRequests",
		Short: "List recipient requests (active only by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")

			fetch := app.Database.GetActiveRecipientRequests
			if all {
				fetch = app.Database.GetRecipientRequests
			}

			requests, err := fetch(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list requests: %w", err)
			}

			fmt.Printf("\nFound %d requests:\n\n", len(requests))
			for _, request := range requests {
				fmt.Printf("- %s (%s) - needs %d unit(s) of %s - %s urgency - %s\n",
					request.UserName,
					request.ID,
					request.Units,
					request.BloodType,
					request.Urgency,
					request.Hospital,
				)
			}

			return nil
		},
	}

	cmd.Flags().Bool("all", false, "Include fulfilled and cancelled requests")

	return cmd
}
