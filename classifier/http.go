package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/raushankrgupta/wardrobe-ai-backend/models"
)

// HTTPClassifier calls a fixed HTTP endpoint with a base64-encoded image.
// Request body is {"image": "<base64>"}; the response is either
// AiResponse-shaped JSON or {"error": "<message>"}.
type HTTPClassifier struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPClassifier(endpoint string) *HTTPClassifier {
	return &HTTPClassifier{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, imageBase64 string) (*models.AiResponse, error) {
	body, err := json.Marshal(map[string]string{"image": imageBase64})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, respBody)
	}

	// A 200 response carrying an "error" field is the soft failure.
	var payload struct {
		models.AiResponse
		Error string `json:"error"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisUnavailable, payload.Error)
	}

	result := payload.AiResponse
	return &result, nil
}
