package cmd

import (
	"log/slog"

	"github.com/gradeport/gradeport/internal/tiers"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the service tier catalog",
		Long: `Writes the built-in service tier catalog for every supported grading
company into the configured tier store. Existing tiers with the same
company and id are overwritten.

Run this once after provisioning the storage backend.`,
		Example: `  # Seed the DynamoDB tier table
  STORAGE_BACKEND=dynamodb gradeport seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, tierStore, _, err := buildStores(ctx)
			if err != nil {
				return err
			}

			catalog := tiers.DefaultCatalog()
			for i := range catalog {
				if err := tierStore.Put(ctx, &catalog[i]); err != nil {
					slog.Error("Failed to seed tier", "company", catalog[i].Company, "tier", catalog[i].TierID, "err", err)
					return err
				}
				slog.Info("Seeded tier", "company", catalog[i].Company, "tier", catalog[i].TierID, "price", catalog[i].Price)
			}
			slog.Info("Tier catalog seeded", "tiers", len(catalog))
			return nil
		},
	}

	return cmd
}
