// Package ocr extracts raw text from book spine and cover photos using
// vision model backends.
package ocr

import (
	"context"
	"fmt"

	"github.com/jsvoboda/shelfscan/internal/config"
)

// Provider defines the interface for text recognition backends.
type Provider interface {
	Name() string
	RecognizeText(ctx context.Context, imageData []byte) (string, error)
}

// FromConfig creates the provider selected by cfg.OCR.Provider.
func FromConfig(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.OCR.Provider {
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, fmt.Errorf("OCR provider %q requires OPENAI_TOKEN", cfg.OCR.Provider)
		}
		return NewOpenAIProvider(cfg.OpenAI.Token), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("OCR provider %q requires GEMINI_API_KEY", cfg.OCR.Provider)
		}
		return NewGeminiProvider(ctx, cfg.Gemini.APIKey)
	default:
		return nil, fmt.Errorf("unknown OCR provider %q", cfg.OCR.Provider)
	}
}
