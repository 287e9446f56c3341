package generation

import (
	"context"

	"smartsummarizer/internal/ratelimiter"
)

type limitedGenerator struct {
	inner   Generator
	limiter *ratelimiter.Limiter
}

// WithRateLimit paces calls to the underlying generator so the remote
// service's rate limits are respected. A nil limiter returns the generator
// unchanged.
func WithRateLimit(g Generator, l *ratelimiter.Limiter) Generator {
	if l == nil {
		return g
	}

	return &limitedGenerator{inner: g, limiter: l}
}

func (g *limitedGenerator) Generate(
	ctx context.Context,
	text string,
	instruction string,
) (string, error) {
	if err := g.limiter.Acquire(ctx); err != nil {
		return "", &ServiceError{Transient: true, Err: err}
	}

	return g.inner.Generate(ctx, text, instruction)
}
