package analysis

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-3-flash-preview"

// GeminiGenerator produces structured JSON completions from the Gemini
// API, constrained by a response schema so the output matches Result.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiGenerator{client: client, model: defaultModel}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"priority": {
					Type:        genai.TypeString,
					Description: "The priority of the case.",
				},
				"summary": {
					Type:        genai.TypeString,
					Description: "A brief summary of the incident in Bengali.",
				},
				"categorySuggestion": {
					Type:        genai.TypeString,
					Description: "Suggested category for this report.",
				},
			},
			Required: []string{"priority", "summary", "categorySuggestion"},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	return result.Text(), nil
}
