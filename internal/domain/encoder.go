package domain

import "context"

// VectorEncoder generates embeddings for texts.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}
