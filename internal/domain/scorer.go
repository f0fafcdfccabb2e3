package domain

import "context"

// PairwiseScorer scores a single query/document pair with a cross-encoder or
// equivalent relevance model. Higher means more relevant. It is called once
// per candidate per rerank invocation.
type PairwiseScorer interface {
	Score(ctx context.Context, query, text string) (float64, error)

	// ModelName returns the model identifier for logging.
	ModelName() string
}
