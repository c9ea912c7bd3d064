// Package store persists submissions, service tiers, and admin audit records.
// Two implementations exist: an in-memory store for development and tests,
// and a DynamoDB-backed store for deployment.
package store

import (
	"context"
	"errors"

	"github.com/gradeport/gradeport/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SubmissionPage is one page of a submission listing. Cursor is opaque; pass
// it back to continue the listing, empty means the listing is complete.
type SubmissionPage struct {
	Submissions []models.Submission `json:"submissions"`
	Cursor      string              `json:"cursor,omitempty"`
}

// SubmissionStore persists grading submissions.
type SubmissionStore interface {
	Put(ctx context.Context, sub *models.Submission) error
	Get(ctx context.Context, id string) (*models.Submission, error)

	// List returns submissions for the given companies, newest first.
	// A nil companies slice means no company filter.
	List(ctx context.Context, companies []string, limit int, cursor string) (*SubmissionPage, error)

	// SearchByEmail returns submissions whose submitter email matches
	// exactly, restricted to the given companies (nil means no filter).
	SearchByEmail(ctx context.Context, email string, companies []string) ([]models.Submission, error)
}

// TierStore persists the service tier catalog.
type TierStore interface {
	ListByCompany(ctx context.Context, company string) ([]models.ServiceTier, error)
	ListAll(ctx context.Context) ([]models.ServiceTier, error)
	Put(ctx context.Context, tier *models.ServiceTier) error
	Delete(ctx context.Context, company, tierID string) error
}

// AuditLog records admin mutations of the tier catalog.
type AuditLog interface {
	Append(ctx context.Context, rec *models.TierAuditRecord) error
}
