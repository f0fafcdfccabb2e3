package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"nyaya-rag/internal/domain"
)

// GeminiGenerator produces answers through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator constructs a generator for the given API key and model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateAnswer sends the composed prompt with the legal system instruction
// and concatenates the text parts of the first candidate.
func (g *GeminiGenerator) GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(generationTemperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(legalSystemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt(query, contextBlock)))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// Version returns the backing model identifier.
func (g *GeminiGenerator) Version() string {
	return g.model
}

var _ domain.Generator = (*GeminiGenerator)(nil)
