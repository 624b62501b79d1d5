package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"fincare-backend/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fincare",
	Short: "Personal finance and clinical practice backend",
	Long: `fincare is the backend for a personal finance manager (accounts,
transactions, credit cards, invoices, budgets) combined with a clinical
practice module (patients, sessions, recurring payments).`,
	SilenceUsage: true,
}

// Execute runs the root command with the loaded configuration.
func Execute(c *config.Config) {
	cfg = c
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
