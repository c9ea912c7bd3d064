package reconcile

import (
	"strconv"
	"testing"
	"time"

	"github.com/gradeport/gradeport/internal/models"
)

func img(id string) models.ImageItem {
	return models.ImageItem{ID: id, ImageURL: "/static/uploads/" + id + ".jpg"}
}

func TestExpandMultipleDetections(t *testing.T) {
	detected := []models.CardDescriptor{
		{PlayerName: "Michael Jordan", Year: "1986"},
		{PlayerName: "Scottie Pippen", Year: "1987"},
		{PlayerName: "Dennis Rodman", Year: "1989"},
	}

	records := Expand(img("img-1"), detected)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	for i, record := range records {
		if record.SourceImageRef != "img-1" {
			t.Errorf("records[%d].SourceImageRef = %q, want img-1", i, record.SourceImageRef)
		}
		if record.PositionInImage != i+1 {
			t.Errorf("records[%d].PositionInImage = %d, want %d", i, record.PositionInImage, i+1)
		}
		if record.TotalDetectedInImage != 3 {
			t.Errorf("records[%d].TotalDetectedInImage = %d, want 3", i, record.TotalDetectedInImage)
		}
		if record.ImageURL != records[0].ImageURL {
			t.Errorf("records[%d] does not share the image reference", i)
		}
	}
}

func TestExpandEmptyDetectionEmitsPlaceholder(t *testing.T) {
	records := Expand(img("img-1"), nil)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 placeholder", len(records))
	}

	record := records[0]
	if record.PlayerName != DefaultPlayerName {
		t.Errorf("PlayerName = %q, want %q", record.PlayerName, DefaultPlayerName)
	}
	if record.Year != strconv.Itoa(time.Now().Year()) {
		t.Errorf("Year = %q, want current year", record.Year)
	}
	if record.Manufacturer != DefaultManufacturer {
		t.Errorf("Manufacturer = %q, want %q", record.Manufacturer, DefaultManufacturer)
	}
	if record.CardNumber != "" {
		t.Errorf("CardNumber = %q, want empty", record.CardNumber)
	}
	if record.CardType != models.CardTypeOther {
		t.Errorf("CardType = %q, want %q", record.CardType, models.CardTypeOther)
	}
	if record.Sport != DefaultSport {
		t.Errorf("Sport = %q, want %q", record.Sport, DefaultSport)
	}
	if record.EstimatedCondition != DefaultCondition {
		t.Errorf("EstimatedCondition = %q, want %q", record.EstimatedCondition, DefaultCondition)
	}
	if record.PositionInImage != 1 || record.TotalDetectedInImage != 1 {
		t.Errorf("position = %d/%d, want 1/1", record.PositionInImage, record.TotalDetectedInImage)
	}
}

func TestExpandFillsPartialDescriptor(t *testing.T) {
	detected := []models.CardDescriptor{{PlayerName: "Charizard", CardType: models.CardTypeTCG}}

	records := Expand(img("img-1"), detected)
	record := records[0]
	if record.PlayerName != "Charizard" {
		t.Errorf("PlayerName = %q, detected value must survive defaulting", record.PlayerName)
	}
	if record.Manufacturer != DefaultManufacturer {
		t.Errorf("Manufacturer = %q, want default", record.Manufacturer)
	}
	if record.CardType != models.CardTypeTCG {
		t.Errorf("CardType = %q, want %q", record.CardType, models.CardTypeTCG)
	}
}

func TestReconcileMixedBatch(t *testing.T) {
	images := []models.ImageItem{img("a"), img("b")}
	results := [][]models.CardDescriptor{
		{{PlayerName: "Card One"}, {PlayerName: "Card Two"}},
		nil, // analysis failed
	}

	records := Reconcile(images, results)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (2 detected + 1 placeholder)", len(records))
	}
	if records[2].SourceImageRef != "b" || records[2].PlayerName != DefaultPlayerName {
		t.Errorf("records[2] = %+v, want placeholder for image b", records[2])
	}
}

func TestMergeReplacesOnlyAnalyzedImage(t *testing.T) {
	existing := []models.CardRecord{
		{CardDescriptor: models.CardDescriptor{PlayerName: "A1"}, SourceImageRef: "a", PositionInImage: 1, TotalDetectedInImage: 2},
		{CardDescriptor: models.CardDescriptor{PlayerName: "A2"}, SourceImageRef: "a", PositionInImage: 2, TotalDetectedInImage: 2},
		{CardDescriptor: models.CardDescriptor{PlayerName: "B1"}, SourceImageRef: "b", PositionInImage: 1, TotalDetectedInImage: 1},
	}

	replacement := Expand(img("a"), []models.CardDescriptor{{PlayerName: "A-new"}})
	merged := Merge(existing, []ImageResult{{Ref: "a", Records: replacement}})

	if len(merged) != 2 {
		t.Fatalf("got %d records, want 2 (1 replacement + 1 untouched)", len(merged))
	}
	if merged[0].PlayerName != "A-new" {
		t.Errorf("merged[0].PlayerName = %q, want A-new in original slot", merged[0].PlayerName)
	}
	if merged[1].PlayerName != "B1" {
		t.Errorf("merged[1].PlayerName = %q, untouched image must keep its record", merged[1].PlayerName)
	}
}

func TestMergeAppendsNewImages(t *testing.T) {
	existing := []models.CardRecord{
		{CardDescriptor: models.CardDescriptor{PlayerName: "A1"}, SourceImageRef: "a"},
	}

	updates := []ImageResult{
		{Ref: "b", Records: Expand(img("b"), nil)},
		{Ref: "c", Records: Expand(img("c"), nil)},
	}
	merged := Merge(existing, updates)

	if len(merged) != 3 {
		t.Fatalf("got %d records, want 3", len(merged))
	}
	if merged[1].SourceImageRef != "b" || merged[2].SourceImageRef != "c" {
		t.Errorf("new images must append in update order, got refs %q, %q",
			merged[1].SourceImageRef, merged[2].SourceImageRef)
	}
}

func TestMergeRepeatedReanalysisDoesNotAccumulate(t *testing.T) {
	images := []models.ImageItem{img("a")}
	records := Reconcile(images, [][]models.CardDescriptor{{{PlayerName: "v1"}}})

	for i := 0; i < 3; i++ {
		replacement := Expand(img("a"), []models.CardDescriptor{{PlayerName: "v2"}, {PlayerName: "v3"}})
		records = Merge(records, []ImageResult{{Ref: "a", Records: replacement}})
	}

	if len(records) != 2 {
		t.Fatalf("got %d records after repeated re-analysis, want 2", len(records))
	}
}
