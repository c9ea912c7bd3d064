// Package submission turns a validated grading session into the persisted
// submission record: aggregate totals, timestamps, and a collision-resistant
// identifier.
package submission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gradeport/gradeport/internal/models"
	"github.com/shopspring/decimal"
)

// Submissions become eligible for storage expiry after 90 days.
const recordTTL = 90 * 24 * time.Hour

// NewSubmissionID builds a submission id from the creation timestamp plus a
// random suffix. The timestamp keeps ids roughly sortable by creation; the
// suffix removes the collision risk of raw millisecond timestamps under
// concurrent submissions.
func NewSubmissionID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// Assemble merges submitter info and the finalized card list into one
// submission record. It validates first and performs no network or storage
// calls; persisting the result is the caller's job.
func Assemble(info models.SubmitterInfo, cards []models.CardRecord, now time.Time) (*models.Submission, error) {
	if err := Validate(info, cards); err != nil {
		return nil, err
	}

	total := decimal.Zero
	lineItems := make([]models.CardLineItem, 0, len(cards))
	for _, card := range cards {
		// Validate guarantees this parses.
		value, err := decimal.NewFromString(card.DeclaredValue)
		if err != nil {
			return nil, fmt.Errorf("declared value %q: %w", card.DeclaredValue, err)
		}
		total = total.Add(value)

		lineItems = append(lineItems, models.CardLineItem{
			CardType:           card.CardType,
			Sport:              card.Sport,
			PlayerName:         card.PlayerName,
			Year:               card.Year,
			Manufacturer:       card.Manufacturer,
			CardNumber:         card.CardNumber,
			EstimatedCondition: card.EstimatedCondition,
			DeclaredValue:      card.DeclaredValue,
			ImageURL:           card.ImageURL,
		})
	}

	return &models.Submission{
		SubmissionID:        NewSubmissionID(now),
		GradingCompany:      info.GradingCompany,
		ServiceTier:         info.ServiceTier,
		SubmitterName:       info.SubmitterName,
		Email:               info.Email,
		Phone:               info.Phone,
		Address:             info.Address,
		SpecialInstructions: info.SpecialInstructions,
		Cards:               lineItems,
		TotalCards:          len(lineItems),
		TotalDeclaredValue:  total,
		SubmittedAt:         now,
		Status:              models.StatusPending,
		TTL:                 now.Add(recordTTL).Unix(),
	}, nil
}
