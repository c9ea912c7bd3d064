package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gradeport",
		Short: "Card grading submission portal with AI-assisted card identification",
		Long: `Gradeport is a web portal for preparing trading card grading submissions.

Users upload card photos, a vision-capable LLM identifies each card and
estimates its market value, and the finished submission is priced against
the grading company's service tiers and persisted.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
