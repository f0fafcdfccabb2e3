package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"nyaya-rag/internal/domain"
	"nyaya-rag/internal/infra/metrics"
)

// Stage failure sentinels. Classification and validation have no failure path
// by design, so only the three externally-dependent stages carry one.
var (
	ErrRetrieval  = errors.New("retrieval failed")
	ErrRerank     = errors.New("rerank failed")
	ErrGeneration = errors.New("generation failed")
)

// QueryState is the orchestrator's working record for one request. Stages only
// ever add fields. The record is exclusively owned by its request, never
// aliased between requests, and discarded after the response is returned.
type QueryState struct {
	QueryID     string
	Query       string
	Intent      *domain.LegalIntent
	Candidates  []domain.ScoredCandidate
	FinalChunks []domain.ScoredCandidate
	Context     string
	Answer      string
	Validation  *ValidationResult
	Err         string // set by the first failing stage, empty otherwise
}

// Failed reports whether a stage recorded a failure on this state.
func (s *QueryState) Failed() bool {
	return s.Err != ""
}

// PipelineConfig carries the tunables for one pipeline instance.
type PipelineConfig struct {
	RetrieveTopK     int
	RerankTopK       int
	MaxContextTokens int
	CacheSize        int
	CacheTTL         time.Duration
}

// Pipeline sequences classification, retrieval, reranking, generation, and
// validation over a QueryState. A stage failure is recorded on the state and
// stops the sequence; later stages would only operate on missing fields.
type Pipeline struct {
	classifier IntentClassifier
	retriever  *HybridRetriever
	reranker   *Reranker
	builder    ContextBuilder
	generator  domain.Generator
	validator  AnswerValidator

	cfg     PipelineConfig
	metrics *metrics.PipelineMetrics
	logger  *slog.Logger
	cache   *expirable.LRU[string, *QueryState]
}

// NewPipeline wires the five stages. metrics may be nil.
func NewPipeline(
	classifier IntentClassifier,
	retriever *HybridRetriever,
	reranker *Reranker,
	builder ContextBuilder,
	generator domain.Generator,
	validator AnswerValidator,
	cfg PipelineConfig,
	m *metrics.PipelineMetrics,
	logger *slog.Logger,
) *Pipeline {
	var cache *expirable.LRU[string, *QueryState]
	if cfg.CacheSize > 0 {
		cache = expirable.NewLRU[string, *QueryState](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	return &Pipeline{
		classifier: classifier,
		retriever:  retriever,
		reranker:   reranker,
		builder:    builder,
		generator:  generator,
		validator:  validator,
		cfg:        cfg,
		metrics:    m,
		logger:     logger,
		cache:      cache,
	}
}

type stage struct {
	name string
	run  func(context.Context, *QueryState) error
}

// Run executes the pipeline for one query and returns the terminal state.
// It never returns an error: failures are captured on the state, and the
// caller inspects Err to distinguish a failed query from a validated answer.
func (p *Pipeline) Run(ctx context.Context, query string) *QueryState {
	cacheKey := strings.TrimSpace(query)

	if p.cache != nil {
		if cached, ok := p.cache.Get(cacheKey); ok {
			p.metrics.CacheHit()
			p.logger.Info("answer_cache_hit", slog.String("query_id", cached.QueryID))
			return cached
		}
	}

	state := &QueryState{
		QueryID: uuid.NewString(),
		Query:   query,
	}

	stages := []stage{
		{"classify_intent", p.classifyIntent},
		{"retrieve", p.retrieve},
		{"rerank", p.rerank},
		{"generate", p.generate},
		{"validate", p.validate},
	}

	for _, st := range stages {
		start := time.Now()
		err := st.run(ctx, state)
		p.metrics.ObserveStage(st.name, time.Since(start), err)

		if err != nil {
			state.Err = fmt.Sprintf("%s: %v", st.name, err)
			p.logger.Error("pipeline_stage_failed",
				slog.String("query_id", state.QueryID),
				slog.String("stage", st.name),
				slog.String("error", err.Error()))
			return state
		}
	}

	if p.cache != nil {
		p.cache.Add(cacheKey, state)
	}

	return state
}

func (p *Pipeline) classifyIntent(_ context.Context, state *QueryState) error {
	intent := p.classifier.Classify(state.Query)
	state.Intent = &intent

	p.logger.Info("intent_classified",
		slog.String("query_id", state.QueryID),
		slog.String("domain", string(intent.Domain)),
		slog.String("law_type", intent.LawType),
		slog.String("query_type", string(intent.QueryType)),
		slog.Int("section_count", len(intent.SpecificSections)))

	return nil
}

func (p *Pipeline) retrieve(ctx context.Context, state *QueryState) error {
	candidates, err := p.retriever.Retrieve(ctx, state.Query, p.cfg.RetrieveTopK)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	state.Candidates = candidates
	return nil
}

func (p *Pipeline) rerank(ctx context.Context, state *QueryState) error {
	reranked, err := p.reranker.Rerank(ctx, state.Query, state.Candidates, p.cfg.RerankTopK)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRerank, err)
	}
	state.FinalChunks = reranked
	return nil
}

func (p *Pipeline) generate(ctx context.Context, state *QueryState) error {
	chunks := make([]domain.LegalChunk, len(state.FinalChunks))
	for i, cand := range state.FinalChunks {
		chunks[i] = cand.Chunk
	}
	state.Context = p.builder.Build(chunks, p.cfg.MaxContextTokens)

	answer, err := p.generator.GenerateAnswer(ctx, state.Query, state.Context)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: empty response from %s", ErrGeneration, p.generator.Version())
	}
	state.Answer = answer
	return nil
}

func (p *Pipeline) validate(_ context.Context, state *QueryState) error {
	result := p.validator.Validate(state.Answer, state.FinalChunks)
	state.Validation = &result

	p.metrics.ObserveVerdict(result.Valid, string(result.Confidence))
	p.logger.Info("answer_validated",
		slog.String("query_id", state.QueryID),
		slog.Bool("valid", result.Valid),
		slog.String("confidence", string(result.Confidence)),
		slog.Int("error_count", len(result.Errors)),
		slog.Int("warning_count", len(result.Warnings)))

	return nil
}
