package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"nyaya-rag/internal/adapter/llm"
	"nyaya-rag/internal/adapter/repository"
	"nyaya-rag/internal/adapter/rerankhttp"
	"nyaya-rag/internal/adapter/searchhttp"
	"nyaya-rag/internal/infra/config"
	"nyaya-rag/internal/infra/httpclient"
	"nyaya-rag/internal/infra/metrics"
	"nyaya-rag/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Pipeline *usecase.Pipeline
	Metrics  *metrics.PipelineMetrics
}

// NewApplicationComponents wires all dependencies from config and the
// database pool.
func NewApplicationComponents(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*ApplicationComponents, error) {
	// Shared HTTP clients with connection pooling
	embedderHTTP := httpclient.NewPooledClient(time.Duration(cfg.EmbedderTimeout) * time.Second)
	keywordHTTP := httpclient.NewPooledClient(time.Duration(cfg.KeywordSearchTimeout) * time.Second)
	rerankHTTP := httpclient.NewPooledClient(time.Duration(cfg.RerankTimeout) * time.Second)

	// Search collaborators
	embedder := llm.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbeddingModel, time.Duration(cfg.EmbedderTimeout)*time.Second, embedderHTTP)
	vectorSearcher := repository.NewChunkSearcher(pool, embedder)
	keywordSearcher := searchhttp.NewKeywordSearchClient(cfg.KeywordSearchURL, time.Duration(cfg.KeywordSearchTimeout)*time.Second, keywordHTTP)

	// Pairwise scorer
	scorer := rerankhttp.NewClient(cfg.RerankURL, cfg.RerankModel, time.Duration(cfg.RerankTimeout)*time.Second, log, rerankHTTP)

	// Generator: provider backend behind breaker and rate limiter
	generator, err := llm.NewGenerator(ctx, llm.GeneratorConfig{
		Provider:      cfg.LLMProvider,
		OllamaURL:     cfg.OllamaURL,
		OllamaModel:   cfg.OllamaModel,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		MaxTokens:     cfg.LLMMaxTokens,
		Timeout:       time.Duration(cfg.LLMTimeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build generator: %w", err)
	}
	guarded := llm.NewRateLimitedGenerator(llm.NewBreakerGenerator(generator), cfg.LLMRateLimit, cfg.LLMRateBurst)

	log.Info("generator_wired",
		slog.String("provider", cfg.LLMProvider),
		slog.String("model", generator.Version()))

	m := metrics.NewPipelineMetrics()

	retriever := usecase.NewHybridRetriever(vectorSearcher, keywordSearcher, cfg.VectorWeight, cfg.KeywordWeight, log)
	reranker := usecase.NewReranker(scorer, log)

	pipeline := usecase.NewPipeline(
		usecase.NewIntentClassifier(),
		retriever,
		reranker,
		usecase.NewContextBuilder(),
		guarded,
		usecase.NewAnswerValidator(),
		usecase.PipelineConfig{
			RetrieveTopK:     cfg.RetrieveTopK,
			RerankTopK:       cfg.RerankTopK,
			MaxContextTokens: cfg.MaxContextTokens,
			CacheSize:        cfg.CacheSize,
			CacheTTL:         time.Duration(cfg.CacheTTLMinutes) * time.Minute,
		},
		m,
		log,
	)

	return &ApplicationComponents{
		Pipeline: pipeline,
		Metrics:  m,
	}, nil
}
