package classifier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/raushankrgupta/wardrobe-ai-backend/models"
)

const geminiPrompt = `Analyze the clothing item in this photo and respond with ONLY a JSON object, no markdown, with these fields:
{
  "clothingType": "<e.g. t shirt, denim jacket>",
  "clothingCategory": "<one of: top, bottom, accessory>",
  "material": "<primary material>",
  "fabricComposition": "<e.g. Cotton (100%)>",
  "longevityScore": <1-10>,
  "maintenanceTips": ["<tip>", ...],
  "co2Consumption": "<e.g. 2.5 kg CO2>",
  "sustainabilityScore": <1-10>
}
If the photo does not show a clothing item, respond with {"error": "<reason>"}.`

// GeminiClassifier runs classification through the Gemini API instead of a
// dedicated endpoint. The prompt constrains the model to the same JSON shape
// the HTTP backend returns.
type GeminiClassifier struct {
	apiKey string
	model  string
}

func NewGeminiClassifier(apiKey string) *GeminiClassifier {
	return &GeminiClassifier{apiKey: apiKey, model: "gemini-1.5-flash"}
}

func (g *GeminiClassifier) Classify(ctx context.Context, imageBase64 string) (*models.AiResponse, error) {
	imgData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid image payload: %w", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx,
		genai.Text(geminiPrompt),
		genai.ImageData("jpeg", imgData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %v", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type: %T", resp.Candidates[0].Content.Parts[0])
	}

	return parseGeminiJSON(string(text))
}

// parseGeminiJSON decodes the model output, tolerating markdown code fences
// the model sometimes wraps around the JSON despite the prompt.
func parseGeminiJSON(text string) (*models.AiResponse, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload struct {
		models.AiResponse
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode Gemini response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrAnalysisUnavailable, payload.Error)
	}

	result := payload.AiResponse
	return &result, nil
}
