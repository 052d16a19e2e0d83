package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
	"github.com/bhyulljz/rakt-matching/pkg/db"
)

// AddRequestCmd creates the addRequest command
func AddRequestCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addRequest <request.json>",
		Short: "Add a recipient request from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read request file: %w", err)
			}

			var request model.RecipientRequest
			if err := json.Unmarshal(data, &request); err != nil {
				return fmt.Errorf("failed to parse request file: %w", err)
			}

			if request.ID == "" {
				request.ID = uuid.New().String()
			}
			if !request.BloodType.IsValid() {
				return fmt.Errorf("invalid blood type %q", request.BloodType)
			}
			if !request.Urgency.IsValid() {
				return fmt.Errorf("invalid urgency %q", request.Urgency)
			}

			if err := app.Database.InsertRecipientRequest(app.Ctx, request, db.RequestStatusActive); err != nil {
				return fmt.Errorf("failed to insert request: %w", err)
			}

			fmt.Printf("\n✓ Request added!\n\n")
			fmt.Printf("Request ID: %s\n", request.ID)
			fmt.Printf("Recipient:  %s\n", request.UserName)
			fmt.Printf("Needs:      %d unit(s) of %s (%s urgency)\n\n",
				request.Units, request.BloodType, request.Urgency)

			return nil
		},
	}
}
