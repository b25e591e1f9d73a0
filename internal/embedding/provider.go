// ABOUTME: Embedding provider boundary mapping text to dense float32 vectors
// ABOUTME: Defines the Provider interface and the never-failing Generator
package embedding

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Provider maps text to a fixed-length dense vector. Implementations should
// return unit-normalized vectors so inner product equals cosine similarity.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator wraps an optional primary provider with a deterministic fallback.
// Embed never fails: when the primary is absent, times out, or errors, the
// fallback vector for the same text is returned instead. Relevance degrades
// but the recommendation path stays available without a live embedding
// backend, which is the documented trade.
type Generator struct {
	primary  Provider
	fallback *Deterministic
	timeout  time.Duration
	log      *zap.Logger
}

// NewGenerator creates a Generator. primary may be nil, in which case every
// embedding comes from the deterministic fallback at the given dimension.
func NewGenerator(primary Provider, dimension int, timeout time.Duration, log *zap.Logger) *Generator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		primary:  primary,
		fallback: NewDeterministic(dimension),
		timeout:  timeout,
		log:      log,
	}
}

// Embed returns an embedding for text. The primary provider call carries a
// timeout; any failure falls back deterministically and is logged, never
// surfaced to the caller.
func (g *Generator) Embed(ctx context.Context, text string) []float32 {
	if g.primary == nil {
		return g.fallback.Vector(text)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	vec, err := g.primary.Embed(ctx, text)
	if err != nil {
		g.log.Warn("embedding provider failed, using deterministic fallback", zap.Error(err))
		return g.fallback.Vector(text)
	}
	if len(vec) == 0 {
		g.log.Warn("embedding provider returned empty vector, using deterministic fallback")
		return g.fallback.Vector(text)
	}
	return vec
}
