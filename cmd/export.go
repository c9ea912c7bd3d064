package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gradeport/gradeport/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cobra"
)

// submissionRow is the flattened Parquet schema, one row per card line item.
type submissionRow struct {
	SubmissionID       string `parquet:"submission_id"`
	GradingCompany     string `parquet:"grading_company"`
	ServiceTier        string `parquet:"service_tier"`
	SubmitterName      string `parquet:"submitter_name"`
	Email              string `parquet:"email"`
	Status             string `parquet:"status"`
	SubmittedAt        int64  `parquet:"submitted_at_ms"`
	TotalCards         int32  `parquet:"total_cards"`
	TotalDeclaredValue string `parquet:"total_declared_value"`

	CardType           string `parquet:"card_type"`
	Sport              string `parquet:"sport"`
	PlayerName         string `parquet:"player_name"`
	Year               string `parquet:"year"`
	Manufacturer       string `parquet:"manufacturer"`
	CardNumber         string `parquet:"card_number"`
	EstimatedCondition string `parquet:"estimated_condition"`
	DeclaredValue      string `parquet:"declared_value"`
}

func newExportCmd() *cobra.Command {
	var output string
	var limit int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export submissions to a Parquet file",
		Long: `Exports every submission in the configured storage backend to a
Parquet file, one row per card. Useful for offline analysis of
submission volume and declared values.`,
		Example: `  # Export from DynamoDB
  STORAGE_BACKEND=dynamodb gradeport export --output submissions.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			submissions, _, _, err := buildStores(ctx)
			if err != nil {
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer file.Close()

			writer := parquet.NewGenericWriter[submissionRow](file)

			var (
				exported int
				cursor   string
			)
			for {
				page, err := submissions.List(ctx, nil, 100, cursor)
				if err != nil {
					return fmt.Errorf("listing submissions: %w", err)
				}
				for i := range page.Submissions {
					rows := flattenSubmission(&page.Submissions[i])
					if _, err := writer.Write(rows); err != nil {
						return fmt.Errorf("writing rows for %s: %w", page.Submissions[i].SubmissionID, err)
					}
					exported++
					if limit > 0 && exported >= limit {
						break
					}
				}
				if page.Cursor == "" || (limit > 0 && exported >= limit) {
					break
				}
				cursor = page.Cursor
			}

			if err := writer.Close(); err != nil {
				return fmt.Errorf("closing parquet writer: %w", err)
			}
			slog.Info("Export complete", "submissions", exported, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "submissions.parquet", "Output file path")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum submissions to export (0 = all)")

	return cmd
}

func flattenSubmission(sub *models.Submission) []submissionRow {
	base := submissionRow{
		SubmissionID:       sub.SubmissionID,
		GradingCompany:     sub.GradingCompany,
		ServiceTier:        sub.ServiceTier,
		SubmitterName:      sub.SubmitterName,
		Email:              sub.Email,
		Status:             sub.Status,
		SubmittedAt:        sub.SubmittedAt.UnixMilli(),
		TotalCards:         int32(sub.TotalCards),
		TotalDeclaredValue: sub.TotalDeclaredValue.String(),
	}
	if len(sub.Cards) == 0 {
		return []submissionRow{base}
	}
	rows := make([]submissionRow, 0, len(sub.Cards))
	for _, card := range sub.Cards {
		row := base
		row.CardType = card.CardType
		row.Sport = card.Sport
		row.PlayerName = card.PlayerName
		row.Year = card.Year
		row.Manufacturer = card.Manufacturer
		row.CardNumber = card.CardNumber
		row.EstimatedCondition = card.EstimatedCondition
		row.DeclaredValue = card.DeclaredValue
		rows = append(rows, row)
	}
	return rows
}
