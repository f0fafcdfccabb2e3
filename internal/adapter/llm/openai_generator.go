package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"nyaya-rag/internal/domain"
)

// OpenAIGenerator produces answers through the OpenAI Chat Completions API.
type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIGenerator constructs a generator for the given API key and model.
// baseURL overrides the API endpoint when non-empty (for compatible gateways).
func NewOpenAIGenerator(apiKey, baseURL, model string, maxTokens int) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// GenerateAnswer sends the system instruction and composed user prompt and
// returns the first choice's content.
func (g *OpenAIGenerator) GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: generationTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: legalSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(query, contextBlock)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Version returns the backing model identifier.
func (g *OpenAIGenerator) Version() string {
	return g.model
}

var _ domain.Generator = (*OpenAIGenerator)(nil)
