package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bhyulljz/rakt-matching/pkg/core/model"
	"github.com/bhyulljz/rakt-matching/pkg/core/services"
)

// RegisterDonorCmd creates the registerDonor command
func RegisterDonorCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "registerDonor <profile.json>",
		Short: "Register a donor from a JSON profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read profile file: %w", err)
			}

			var donor model.DonorProfile
			if err := json.Unmarshal(data, &donor); err != nil {
				return fmt.Errorf("failed to parse profile file: %w", err)
			}

			stored, err := services.RegisterDonor(app.Ctx, app.Database, app.Logger, donor)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Donor registered!\n\n")
			fmt.Printf("Donor ID:   %s\n", stored.ID)
			fmt.Printf("Name:       %s\n", stored.Name)
			fmt.Printf("Blood type: %s\n\n", stored.BloodType)

			return nil
		},
	}
}
