package vision

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gradeport/gradeport/internal/models"
)

const maxCardsPerImage = 10

// detectionResponse is the wire shape the prompt asks for.
type detectionResponse struct {
	Cards []models.CardDescriptor `json:"cards"`
}

var lineValueRe = regexp.MustCompile(`[:：]\s*(.+)`)
var lineYearRe = regexp.MustCompile(`[:：]\s*(\d{4})`)

// ParseDetection extracts card descriptors from a raw model response. It
// accepts the contracted {"cards": [...]} object, a bare array, or a single
// descriptor object; anything else falls back to line-based text extraction
// rather than failing outright.
func ParseDetection(text string) []models.CardDescriptor {
	cleaned := stripFences(text)

	if cards, err := parseJSON(cleaned); err == nil {
		if len(cards) > maxCardsPerImage {
			slog.Warn("Vision response exceeded card limit, truncating", "detected", len(cards), "limit", maxCardsPerImage)
			cards = cards[:maxCardsPerImage]
		}
		return cards
	} else {
		slog.Warn("Failed to parse vision response as JSON, using text fallback", "error", err)
	}

	return []models.CardDescriptor{parseTextResponse(cleaned)}
}

func parseJSON(text string) ([]models.CardDescriptor, error) {
	// Models occasionally wrap the JSON in prose; isolate the first object
	// or array.
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return nil, fmt.Errorf("no JSON found in response")
	}
	end := strings.LastIndexAny(text, "}]")
	if end < start {
		return nil, fmt.Errorf("unterminated JSON in response")
	}
	payload := text[start : end+1]

	if strings.HasPrefix(payload, "[") {
		var cards []models.CardDescriptor
		if err := json.Unmarshal([]byte(payload), &cards); err != nil {
			return nil, err
		}
		return cards, nil
	}

	var response detectionResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return nil, err
	}
	if response.Cards != nil {
		return response.Cards, nil
	}

	// A single bare descriptor counts as a one-card batch.
	var single models.CardDescriptor
	if err := json.Unmarshal([]byte(payload), &single); err != nil {
		return nil, err
	}
	if single == (models.CardDescriptor{}) {
		return nil, fmt.Errorf("no card fields found in response")
	}
	return []models.CardDescriptor{single}, nil
}

// parseTextResponse scavenges "key: value" lines from a non-JSON response,
// producing a single best-effort descriptor. Fields it cannot find stay
// empty; the reconciler applies defaults.
func parseTextResponse(text string) models.CardDescriptor {
	var card models.CardDescriptor

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "player") || strings.Contains(lower, "name:"):
			if m := lineValueRe.FindStringSubmatch(line); m != nil && card.PlayerName == "" {
				card.PlayerName = strings.TrimSpace(m[1])
			}
		case strings.Contains(lower, "year:"):
			if m := lineYearRe.FindStringSubmatch(line); m != nil {
				card.Year = m[1]
			}
		case strings.Contains(lower, "manufacturer:") || strings.Contains(lower, "brand:"):
			if m := lineValueRe.FindStringSubmatch(line); m != nil {
				card.Manufacturer = strings.TrimSpace(m[1])
			}
		case strings.Contains(lower, "card number:"):
			if m := lineValueRe.FindStringSubmatch(line); m != nil {
				card.CardNumber = strings.TrimSpace(m[1])
			}
		case strings.Contains(lower, "condition:"):
			if m := lineValueRe.FindStringSubmatch(line); m != nil {
				card.EstimatedCondition = strings.TrimSpace(m[1])
			}
		}
	}

	// Franchise keywords pin down the card type even without labeled lines.
	lowerText := strings.ToLower(text)
	switch {
	case strings.Contains(lowerText, "pokemon") || strings.Contains(lowerText, "pokémon"):
		card.CardType = models.CardTypeTCG
		card.Sport = "Pokemon"
	case strings.Contains(lowerText, "magic") || strings.Contains(lowerText, "mtg"):
		card.CardType = models.CardTypeTCG
		card.Sport = "Magic: The Gathering"
	case strings.Contains(lowerText, "yu-gi-oh") || strings.Contains(lowerText, "yugioh"):
		card.CardType = models.CardTypeTCG
		card.Sport = "Yu-Gi-Oh!"
	case strings.Contains(lowerText, "baseball"):
		card.CardType = models.CardTypeSports
		card.Sport = "Baseball"
	case strings.Contains(lowerText, "basketball"):
		card.CardType = models.CardTypeSports
		card.Sport = "Basketball"
	case strings.Contains(lowerText, "football"):
		card.CardType = models.CardTypeSports
		card.Sport = "Football"
	}

	return card
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// StripDataURI removes an optional data-URI prefix from a base64 payload and
// reports the embedded MIME type, if any.
func StripDataURI(payload string) (string, string) {
	if !strings.HasPrefix(payload, "data:") {
		return payload, ""
	}
	comma := strings.Index(payload, ",")
	if comma < 0 {
		return payload, ""
	}
	meta := payload[len("data:"):comma]
	mimeType := strings.TrimSuffix(meta, ";base64")
	return payload[comma+1:], mimeType
}
