package reconcile

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gradeport/gradeport/internal/models"
	"github.com/gradeport/gradeport/internal/pricing"
	"github.com/gradeport/gradeport/internal/vision"
	"golang.org/x/sync/errgroup"
)

// MaxConcurrentAnalyses bounds how many vision calls a batch issues at once,
// matching the maximum cards-per-image assumption.
const MaxConcurrentAnalyses = 10

// ImageFetcher loads the binary for an image reference so it can be sent to
// the vision provider.
type ImageFetcher interface {
	Fetch(ctx context.Context, image models.ImageItem) (data []byte, mimeType string, err error)
}

// Analyzer runs vision detection over a batch of images and reconciles the
// outcomes into card records. Analyses run concurrently; the merge itself is
// a single synchronous pass performed by the caller after all calls settle.
type Analyzer struct {
	provider  vision.Provider
	fetcher   ImageFetcher
	estimator *pricing.Estimator
	config    vision.Config
}

// NewAnalyzer returns an analyzer over the given provider and image source.
func NewAnalyzer(provider vision.Provider, fetcher ImageFetcher, estimator *pricing.Estimator, config vision.Config) *Analyzer {
	return &Analyzer{
		provider:  provider,
		fetcher:   fetcher,
		estimator: estimator,
		config:    config,
	}
}

// BatchResult buffers the settled outcome of one analysis batch. Failures
// map image refs to the error that hit them; those images still produced a
// placeholder record.
type BatchResult struct {
	Updates  []ImageResult
	Failures map[string]string
}

// AnalyzeBatch issues one vision call per image, bounded to
// MaxConcurrentAnalyses in flight, and buffers every outcome until the whole
// batch settles. A failed call for one image never aborts its siblings: the
// image falls back to a single placeholder record and the failure is
// reported. Price bands are stamped on each detected card, and the average
// becomes the declared value until the user overrides it.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, images []models.ImageItem) *BatchResult {
	detections := make([][]models.CardDescriptor, len(images))
	errs := make([]error, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentAnalyses)
	for i, image := range images {
		g.Go(func() error {
			detections[i], errs[i] = a.analyzeOne(gctx, image)
			return nil
		})
	}
	// Goroutines only record their outcome, so Wait cannot fail.
	_ = g.Wait()

	result := &BatchResult{Failures: make(map[string]string)}
	for i, image := range images {
		if errs[i] != nil {
			slog.Warn("Card analysis failed, keeping placeholder record",
				"image", image.ID, "error", errs[i])
			result.Failures[image.ID] = errs[i].Error()
			detections[i] = nil
		}

		records := Expand(image, detections[i])
		// Estimate from the raw descriptors, not the defaulted records:
		// placeholder defaults must never manufacture a price band.
		for j, descriptor := range detections[i] {
			a.stampEstimate(&records[j], descriptor)
		}
		result.Updates = append(result.Updates, ImageResult{Ref: image.ID, Records: records})
	}
	return result
}

func (a *Analyzer) analyzeOne(ctx context.Context, image models.ImageItem) ([]models.CardDescriptor, error) {
	data, mimeType, err := a.fetcher.Fetch(ctx, image)
	if err != nil {
		return nil, err
	}

	cards, err := a.provider.DetectCards(ctx, data, mimeType, a.config)
	if err != nil {
		return nil, err
	}

	slog.Info("Card analysis complete", "image", image.ID, "cards_detected", len(cards))
	return cards, nil
}

func (a *Analyzer) stampEstimate(record *models.CardRecord, descriptor models.CardDescriptor) {
	if a.estimator == nil {
		return
	}
	record.EstimatedValue = a.estimator.Estimate(descriptor)
	if record.EstimatedValue != nil && record.DeclaredValue == "" {
		record.DeclaredValue = strconv.Itoa(record.EstimatedValue.Average)
	}
}
