// Package reconcile merges per-image vision detection batches into a flat,
// provenance-tagged card list. Every uploaded image contributes at least one
// card record: a failed or empty detection leaves one placeholder the user
// can fill in manually.
package reconcile

import (
	"strconv"
	"time"

	"github.com/gradeport/gradeport/internal/models"
)

// Defaults applied to every emitted record so missing vision output never
// leaks into a persisted card.
const (
	DefaultPlayerName   = "Unknown Player"
	DefaultManufacturer = "Unknown"
	DefaultSport        = "Other"
	DefaultCondition    = "Very Good"
)

// Expand turns the detection results for one image into card records. A nil
// or empty result set still emits one placeholder record; k detected cards
// emit k records stamped with positions 1..k, all sharing the image
// reference.
func Expand(image models.ImageItem, detected []models.CardDescriptor) []models.CardRecord {
	if len(detected) == 0 {
		detected = []models.CardDescriptor{{}}
	}

	records := make([]models.CardRecord, 0, len(detected))
	for i, descriptor := range detected {
		records = append(records, models.CardRecord{
			CardDescriptor:       withDefaults(descriptor),
			SourceImageRef:       image.ID,
			PositionInImage:      i + 1,
			TotalDetectedInImage: len(detected),
			ImageURL:             image.ImageURL,
		})
	}
	return records
}

// Reconcile expands detection results for a batch of images into one flat
// card list. results[i] holds the cards detected in images[i]; a short
// results slice treats the remaining images as undetected.
func Reconcile(images []models.ImageItem, results [][]models.CardDescriptor) []models.CardRecord {
	var records []models.CardRecord
	for i, image := range images {
		var detected []models.CardDescriptor
		if i < len(results) {
			detected = results[i]
		}
		records = append(records, Expand(image, detected)...)
	}
	return records
}

// ImageResult is the reconciled record set for one analyzed image.
type ImageResult struct {
	Ref     string
	Records []models.CardRecord
}

// Merge replaces the records of re-analyzed images inside an existing card
// list. All prior records for an analyzed image are dropped in favor of the
// new set (no stale duplicates accumulate); records for untouched images keep
// their order and content. Result sets for images with no prior records are
// appended in update order.
func Merge(existing []models.CardRecord, updates []ImageResult) []models.CardRecord {
	replacements := make(map[string][]models.CardRecord, len(updates))
	for _, update := range updates {
		replacements[update.Ref] = update.Records
	}

	merged := make([]models.CardRecord, 0, len(existing))
	spliced := make(map[string]bool, len(updates))

	for _, record := range existing {
		replacement, ok := replacements[record.SourceImageRef]
		if !ok {
			merged = append(merged, record)
			continue
		}
		if !spliced[record.SourceImageRef] {
			merged = append(merged, replacement...)
			spliced[record.SourceImageRef] = true
		}
	}

	for _, update := range updates {
		if !spliced[update.Ref] {
			merged = append(merged, update.Records...)
			spliced[update.Ref] = true
		}
	}

	return merged
}

func withDefaults(d models.CardDescriptor) models.CardDescriptor {
	if d.PlayerName == "" {
		d.PlayerName = DefaultPlayerName
	}
	if d.Year == "" {
		d.Year = strconv.Itoa(time.Now().Year())
	}
	if d.Manufacturer == "" {
		d.Manufacturer = DefaultManufacturer
	}
	if d.CardType == "" {
		d.CardType = models.CardTypeOther
	}
	if d.Sport == "" {
		d.Sport = DefaultSport
	}
	if d.EstimatedCondition == "" {
		d.EstimatedCondition = DefaultCondition
	}
	return d
}
