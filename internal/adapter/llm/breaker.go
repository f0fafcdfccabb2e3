package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"nyaya-rag/internal/domain"
)

// BreakerGenerator wraps a Generator with a circuit breaker so a flapping
// model endpoint fails fast instead of tying up request goroutines on
// timeouts.
type BreakerGenerator struct {
	inner   domain.Generator
	breaker *gobreaker.CircuitBreaker[string]
}

// NewBreakerGenerator wraps inner. The breaker opens after five consecutive
// failures and probes again after 30 seconds.
func NewBreakerGenerator(inner domain.Generator) *BreakerGenerator {
	settings := gobreaker.Settings{
		Name:        "generator",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerGenerator{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

// GenerateAnswer delegates through the breaker.
func (b *BreakerGenerator) GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error) {
	return b.breaker.Execute(func() (string, error) {
		return b.inner.GenerateAnswer(ctx, query, contextBlock)
	})
}

// Version returns the wrapped generator's model identifier.
func (b *BreakerGenerator) Version() string {
	return b.inner.Version()
}

var _ domain.Generator = (*BreakerGenerator)(nil)
