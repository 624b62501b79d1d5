package cmd

import (
	"github.com/spf13/cobra"

	"fincare-backend/internal/clock"
	"fincare-backend/internal/database"
	httpserver "fincare-backend/internal/http"
	"fincare-backend/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("serve")

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		r := httpserver.NewServer(cfg, db, clock.NewReal())
		log.Info().Str("port", cfg.Port).Msg("listening")
		return r.Run(":" + cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
