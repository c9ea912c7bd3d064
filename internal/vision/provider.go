package vision

import (
	"context"
	"fmt"
	"os"

	"github.com/gradeport/gradeport/internal/models"
)

// Config represents the configuration for a vision provider call.
type Config struct {
	Model       string
	Temperature float64
}

// Provider defines the interface for a vision model that detects trading
// cards in a photo. A single image may contain several cards; implementations
// return one descriptor per detected card, in reading order.
type Provider interface {
	DetectCards(ctx context.Context, imageData []byte, mimeType string, config Config) ([]models.CardDescriptor, error)
}

// FromEnv selects a provider by the VISION_PROVIDER environment variable.
// Gemini is the default.
func FromEnv() (Provider, error) {
	switch provider := os.Getenv("VISION_PROVIDER"); provider {
	case "", "gemini":
		return NewGemini(), nil
	case "openai":
		return NewOpenAI(), nil
	case "ollama":
		return NewOllama(), nil
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", provider)
	}
}

// DefaultModel returns the model name to use for a provider when none is
// configured.
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-2.5-flash"
	}
}
