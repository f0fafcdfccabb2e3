package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"nyaya-rag/internal/domain"
)

// Reranker applies a second, stricter relevance pass over already-retrieved
// candidates using a pairwise query-document scoring model.
type Reranker struct {
	scorer domain.PairwiseScorer
	logger *slog.Logger
}

// NewReranker wires the pairwise scoring collaborator.
func NewReranker(scorer domain.PairwiseScorer, logger *slog.Logger) *Reranker {
	return &Reranker{scorer: scorer, logger: logger}
}

// Rerank scores every candidate against the query, sorts by descending rerank
// score (stable, so ties retain input order), and truncates to topK.
//
// A scorer failure fails the whole call: returning unreranked results under
// the rerank-score label would misrepresent confidence downstream.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []domain.ScoredCandidate, topK int) ([]domain.ScoredCandidate, error) {
	start := time.Now()

	reranked := make([]domain.ScoredCandidate, len(candidates))
	copy(reranked, candidates)

	for i := range reranked {
		score, err := r.scorer.Score(ctx, query, reranked[i].Chunk.ScoringText())
		if err != nil {
			return nil, fmt.Errorf("pairwise scoring failed for chunk %s: %w", reranked[i].Chunk.ChunkID, err)
		}
		reranked[i].RerankScore = score
	}

	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].RerankScore > reranked[j].RerankScore
	})
	if len(reranked) > topK {
		reranked = reranked[:topK]
	}

	r.logger.Info("reranking_completed",
		slog.Int("candidate_count", len(candidates)),
		slog.Int("reranked_count", len(reranked)),
		slog.String("model", r.scorer.ModelName()),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return reranked, nil
}
