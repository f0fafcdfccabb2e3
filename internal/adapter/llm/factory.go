package llm

import (
	"context"
	"fmt"
	"time"

	"nyaya-rag/internal/domain"
)

// GeneratorConfig selects and parameterizes a generator backend.
type GeneratorConfig struct {
	Provider string // "ollama", "openai", "gemini"

	OllamaURL   string
	OllamaModel string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GeminiAPIKey string
	GeminiModel  string

	MaxTokens int
	Timeout   time.Duration
}

// NewGenerator builds the configured backend. The pipeline consumes the
// result through domain.Generator and never branches on backend identity.
func NewGenerator(ctx context.Context, cfg GeneratorConfig) (domain.Generator, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaGenerator(cfg.OllamaURL, cfg.OllamaModel, cfg.Timeout), nil
	case "openai":
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.MaxTokens)
	case "gemini":
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
