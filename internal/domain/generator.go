package domain

import "context"

// Generator produces a grounded answer from the user query and the assembled
// context block. The system instruction (citation-first legal-answer format)
// lives with the concrete implementation, not with the pipeline.
type Generator interface {
	GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error)

	// Version returns the backing model identifier for logging.
	Version() string
}
