package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"nyaya-rag/internal/domain"
)

// HybridRetriever fuses vector and keyword search results into a single
// ranked candidate list via a weighted sum keyed by chunk ID.
type HybridRetriever struct {
	vector        domain.VectorSearcher
	keyword       domain.KeywordSearcher
	vectorWeight  float64
	keywordWeight float64
	logger        *slog.Logger
}

// NewHybridRetriever wires the two search collaborators with their fusion
// weights. The weights are not required to sum to 1.
func NewHybridRetriever(
	vector domain.VectorSearcher,
	keyword domain.KeywordSearcher,
	vectorWeight, keywordWeight float64,
	logger *slog.Logger,
) *HybridRetriever {
	return &HybridRetriever{
		vector:        vector,
		keyword:       keyword,
		vectorWeight:  vectorWeight,
		keywordWeight: keywordWeight,
		logger:        logger,
	}
}

// Retrieve runs both search paths with the same limit, fuses their results,
// and returns at most topK candidates sorted by descending final score.
//
// If either collaborator fails, the whole call fails: a fused list with a
// fully-zeroed half carries meaningless weights and must not be returned as a
// degraded partial result.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.ScoredCandidate, error) {
	start := time.Now()

	var vectorHits, keywordHits []domain.SearchHit

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := r.vector.Search(gctx, query, topK)
		if err != nil {
			return fmt.Errorf("vector search failed: %w", err)
		}
		vectorHits = hits
		return nil
	})
	g.Go(func() error {
		hits, err := r.keyword.Search(gctx, query, topK)
		if err != nil {
			return fmt.Errorf("keyword search failed: %w", err)
		}
		keywordHits = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fused := r.fuse(vectorHits, keywordHits)
	if len(fused) > topK {
		fused = fused[:topK]
	}

	r.logger.Info("retrieval_completed",
		slog.Int("vector_count", len(vectorHits)),
		slog.Int("keyword_count", len(keywordHits)),
		slog.Int("fused_count", len(fused)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	return fused, nil
}

// fuse merges the two hit lists into one candidate set keyed by chunk ID. A
// chunk seen by only one path keeps a zero score for the other path. The sort
// is stable over insertion order (vector hits first), so ties reproduce the
// same output across runs.
func (r *HybridRetriever) fuse(vectorHits, keywordHits []domain.SearchHit) []domain.ScoredCandidate {
	byID := make(map[string]*domain.ScoredCandidate, len(vectorHits)+len(keywordHits))
	order := make([]string, 0, len(vectorHits)+len(keywordHits))

	for _, hit := range vectorHits {
		id := hit.Chunk.ChunkID
		if _, exists := byID[id]; exists {
			continue
		}
		byID[id] = &domain.ScoredCandidate{Chunk: hit.Chunk, VectorScore: hit.Score}
		order = append(order, id)
	}
	for _, hit := range keywordHits {
		id := hit.Chunk.ChunkID
		if existing, exists := byID[id]; exists {
			existing.KeywordScore = hit.Score
			continue
		}
		byID[id] = &domain.ScoredCandidate{Chunk: hit.Chunk, KeywordScore: hit.Score}
		order = append(order, id)
	}

	fused := make([]domain.ScoredCandidate, 0, len(order))
	for _, id := range order {
		c := byID[id]
		c.FinalScore = r.vectorWeight*c.VectorScore + r.keywordWeight*c.KeywordScore
		fused = append(fused, *c)
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].FinalScore > fused[j].FinalScore
	})

	return fused
}
