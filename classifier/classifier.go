package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/raushankrgupta/wardrobe-ai-backend/config"
	"github.com/raushankrgupta/wardrobe-ai-backend/models"
)

// ErrAnalysisUnavailable is the soft failure: the classifier answered but
// could not analyse the image. Callers surface it as "analysis unavailable",
// never as a crash, and must not create any records.
var ErrAnalysisUnavailable = errors.New("analysis unavailable")

// Classifier infers clothing attributes from a base64-encoded image
type Classifier interface {
	Classify(ctx context.Context, imageBase64 string) (*models.AiResponse, error)
}

// NewFromConfig returns the configured classifier backend. A fixed HTTP
// endpoint takes precedence; Gemini is the fallback when only an API key
// is configured.
func NewFromConfig() (Classifier, error) {
	if config.ClassifierURL != "" {
		return NewHTTPClassifier(config.ClassifierURL), nil
	}
	if config.GeminiAPIKey != "" {
		return NewGeminiClassifier(config.GeminiAPIKey), nil
	}
	return nil, fmt.Errorf("no classifier configured: set CLASSIFIER_URL or GEMINI_API_KEY")
}
