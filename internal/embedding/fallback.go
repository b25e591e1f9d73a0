// ABOUTME: Deterministic pseudo-embedding used when no live provider is available
// ABOUTME: Hash-seeded Gaussian vectors, unit-normalized, same text same vector
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"
)

// DefaultDimension is the fallback vector width when none is configured.
const DefaultDimension = 768

// Deterministic produces text-dependent pseudo-embeddings of a fixed
// dimension. The same text always yields the same vector, which keeps
// queries reproducible and lets tests run without any embedding backend.
type Deterministic struct {
	dim int
}

// NewDeterministic creates a fallback provider; dim <= 0 uses DefaultDimension.
func NewDeterministic(dim int) *Deterministic {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &Deterministic{dim: dim}
}

// Dimension returns the fixed vector width.
func (d *Deterministic) Dimension() int { return d.dim }

// Embed implements Provider. It never returns an error.
func (d *Deterministic) Embed(_ context.Context, text string) ([]float32, error) {
	return d.Vector(text), nil
}

// Vector returns the unit-normalized pseudo-embedding for text.
func (d *Deterministic) Vector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	vec := make([]float32, d.dim)
	var norm float64
	for i := range vec {
		x := rng.NormFloat64()
		vec[i] = float32(x)
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		vec[0] = 1
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
