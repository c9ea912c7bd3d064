package storage

import (
	"context"

	"github.com/gradeport/gradeport/internal/models"
)

// Fetcher adapts an ImageStore to the analyzer's image access. Session images
// use their storage key as the image id.
type Fetcher struct {
	Store ImageStore
}

func (f Fetcher) Fetch(ctx context.Context, image models.ImageItem) ([]byte, string, error) {
	return f.Store.Fetch(ctx, image.ID)
}
