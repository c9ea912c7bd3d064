package vision

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/gradeport/gradeport/internal/models"
	"google.golang.org/api/option"
)

// Gemini is a vision provider backed by Google Gemini.
type Gemini struct{}

// NewGemini returns a new Gemini provider.
func NewGemini() *Gemini {
	return &Gemini{}
}

// DetectCards analyzes a card photo using Gemini and returns one descriptor
// per detected card.
func (g *Gemini) DetectCards(ctx context.Context, imageData []byte, mimeType string, config Config) ([]models.CardDescriptor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	modelName := config.Model
	if modelName == "" {
		modelName = DefaultModel("gemini")
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(config.Temperature))

	resp, err := model.GenerateContent(ctx,
		genai.Text(detectionPrompt),
		genai.ImageData(imageFormat(mimeType), imageData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	return ParseDetection(string(txt)), nil
}

// imageFormat converts a MIME type to the bare format label genai expects.
func imageFormat(mimeType string) string {
	if mimeType == "" {
		return "jpeg"
	}
	return strings.TrimPrefix(mimeType, "image/")
}
