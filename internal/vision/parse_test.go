package vision

import (
	"testing"

	"github.com/gradeport/gradeport/internal/models"
)

func TestParseDetectionCardsObject(t *testing.T) {
	response := "```json\n" + `{
  "cards": [
    {"playerName": "Michael Jordan", "year": "1986", "manufacturer": "Fleer", "cardNumber": "#57", "cardType": "Sports", "sport": "Basketball", "estimatedCondition": "Near Mint"},
    {"playerName": "Charizard", "year": "1999", "manufacturer": "Pokemon Company", "cardType": "Trading Card Game (TCG)", "sport": "Pokemon", "estimatedCondition": "Excellent"}
  ]
}` + "\n```"

	cards := ParseDetection(response)
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].PlayerName != "Michael Jordan" {
		t.Errorf("cards[0].PlayerName = %q", cards[0].PlayerName)
	}
	if cards[1].Sport != "Pokemon" {
		t.Errorf("cards[1].Sport = %q", cards[1].Sport)
	}
}

func TestParseDetectionSingleObject(t *testing.T) {
	response := `{"playerName": "Babe Ruth", "year": "1933", "cardType": "Sports", "sport": "Baseball", "estimatedCondition": "Good"}`

	cards := ParseDetection(response)
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].PlayerName != "Babe Ruth" {
		t.Errorf("PlayerName = %q, want Babe Ruth", cards[0].PlayerName)
	}
}

func TestParseDetectionBareArray(t *testing.T) {
	response := `[{"playerName": "Pikachu", "cardType": "Trading Card Game (TCG)"}]`

	cards := ParseDetection(response)
	if len(cards) != 1 || cards[0].PlayerName != "Pikachu" {
		t.Fatalf("got %+v, want single Pikachu card", cards)
	}
}

func TestParseDetectionEmptyCardsArray(t *testing.T) {
	cards := ParseDetection(`{"cards": []}`)
	if len(cards) != 0 {
		t.Fatalf("got %d cards, want 0 for empty detection", len(cards))
	}
}

func TestParseDetectionTruncatesOverLimit(t *testing.T) {
	response := `{"cards": [`
	for i := 0; i < 12; i++ {
		if i > 0 {
			response += ","
		}
		response += `{"playerName": "Card"}`
	}
	response += `]}`

	cards := ParseDetection(response)
	if len(cards) != maxCardsPerImage {
		t.Fatalf("got %d cards, want %d", len(cards), maxCardsPerImage)
	}
}

func TestParseDetectionTextFallback(t *testing.T) {
	response := `I could not produce JSON, but here is what I see:
Player Name: Mickey Mantle
Year: 1952
Manufacturer: Topps
Card Number: #311
Condition: Fair
This is a vintage baseball card.`

	cards := ParseDetection(response)
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1 from text fallback", len(cards))
	}

	card := cards[0]
	want := models.CardDescriptor{
		PlayerName:         "Mickey Mantle",
		Year:               "1952",
		Manufacturer:       "Topps",
		CardNumber:         "#311",
		CardType:           models.CardTypeSports,
		Sport:              "Baseball",
		EstimatedCondition: "Fair",
	}
	if card != want {
		t.Errorf("fallback card = %+v, want %+v", card, want)
	}
}

func TestParseDetectionGarbageYieldsEmptyDescriptor(t *testing.T) {
	cards := ParseDetection("total nonsense with no structure at all")
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1 placeholder descriptor", len(cards))
	}
	if cards[0].PlayerName != "" {
		t.Errorf("PlayerName = %q, want empty (defaults are the reconciler's job)", cards[0].PlayerName)
	}
}

func TestStripDataURI(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantData string
		wantMIME string
	}{
		{"plain base64", "aGVsbG8=", "aGVsbG8=", ""},
		{"jpeg data uri", "data:image/jpeg;base64,aGVsbG8=", "aGVsbG8=", "image/jpeg"},
		{"png data uri", "data:image/png;base64,xyz", "xyz", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mime := StripDataURI(tt.in)
			if data != tt.wantData || mime != tt.wantMIME {
				t.Errorf("StripDataURI(%q) = (%q, %q), want (%q, %q)", tt.in, data, mime, tt.wantData, tt.wantMIME)
			}
		})
	}
}
