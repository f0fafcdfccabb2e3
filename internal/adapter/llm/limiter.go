package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"nyaya-rag/internal/domain"
)

// RateLimitedGenerator wraps a Generator with a token-bucket limiter so bursts
// of queries do not exhaust the model provider's quota.
type RateLimitedGenerator struct {
	inner   domain.Generator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator wraps inner with the given requests-per-second
// budget and burst size.
func NewRateLimitedGenerator(inner domain.Generator, requestsPerSecond float64, burst int) *RateLimitedGenerator {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedGenerator{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// GenerateAnswer waits for limiter clearance, then delegates.
func (r *RateLimitedGenerator) GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}
	return r.inner.GenerateAnswer(ctx, query, contextBlock)
}

// Version returns the wrapped generator's model identifier.
func (r *RateLimitedGenerator) Version() string {
	return r.inner.Version()
}

var _ domain.Generator = (*RateLimitedGenerator)(nil)
