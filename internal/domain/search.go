package domain

import "context"

// SearchHit pairs a chunk with the score its index assigned to it.
type SearchHit struct {
	Chunk LegalChunk
	Score float64
}

// VectorSearcher performs dense similarity search over the chunk store.
// Scores are monotonic: higher means more similar.
type VectorSearcher interface {
	Search(ctx context.Context, query string, k int) ([]SearchHit, error)
}

// KeywordSearcher performs lexical (BM25) search over the chunk store.
// Scores are monotonic: higher means more relevant.
type KeywordSearcher interface {
	Search(ctx context.Context, query string, k int) ([]SearchHit, error)
}

// ScoredCandidate carries a chunk plus its retrieval provenance. A chunk seen
// by only one search path keeps a zero score for the other path; the missing
// half of the weighted sum is the only penalty it takes.
type ScoredCandidate struct {
	Chunk        LegalChunk
	VectorScore  float64
	KeywordScore float64
	FinalScore   float64
	RerankScore  float64
}
