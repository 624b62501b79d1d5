package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"fincare-backend/internal/clock"
	"fincare-backend/internal/database"
	"fincare-backend/internal/logger"
	"fincare-backend/internal/recurring"
)

var recurringUserID uint

// generate-recurring expands recurring payment templates into concrete
// pending payments. Safe to re-run: generation is idempotent per
// (patient, date), so this can sit behind cron as well as the UI button.
var recurringCmd = &cobra.Command{
	Use:   "generate-recurring",
	Short: "Generate pending payments from recurring templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("generate-recurring")

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}

		store := recurring.NewGormStore(db)
		gen := recurring.NewGenerator(store, clock.NewReal())
		ctx := context.Background()

		userIDs := []uint{recurringUserID}
		if recurringUserID == 0 {
			userIDs, err = store.UserIDsWithTemplates(ctx)
			if err != nil {
				return err
			}
		}

		for _, userID := range userIDs {
			report := gen.Run(ctx, userID)
			log.Info().
				Uint("user_id", userID).
				Int("generated", report.Generated).
				Int("skipped", report.Skipped).
				Int("errors", len(report.Errors)).
				Msg("recurring generation finished")
		}
		return nil
	},
}

func init() {
	recurringCmd.Flags().UintVar(&recurringUserID, "user", 0, "generate for a single user id (default: all users with templates)")
	rootCmd.AddCommand(recurringCmd)
}
