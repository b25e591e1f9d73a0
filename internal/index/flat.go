// ABOUTME: Flat exact inner-product vector index over float32 embeddings
// ABOUTME: Brute-force search with deterministic tie-breaking by position
package index

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotBuilt is returned when querying or saving an index that has no vectors.
	ErrNotBuilt = errors.New("index: not built")
	// ErrInvalidK is returned for non-positive result counts.
	ErrInvalidK = errors.New("index: k must be positive")
	// ErrDimensionMismatch is returned when vector lengths disagree with the
	// dimension fixed at build time.
	ErrDimensionMismatch = errors.New("index: dimension mismatch")
	// ErrEmptyBuild is returned when building from an empty vector list.
	ErrEmptyBuild = errors.New("index: no vectors to build")
)

// Hit is one query match: the ordinal position of the stored vector and its
// inner-product score against the query.
type Hit struct {
	Position int
	Score    float64
}

// Flat is an exact nearest-neighbor index using inner-product similarity.
// Inner product equals cosine similarity only when both sides are
// unit-normalized; normalization is the caller's responsibility, the index
// does not normalize. Flat is read-only after Build and safe for concurrent
// queries.
//
// Search is O(N) per query. That is deliberate: catalogs are hundreds to low
// thousands of items, and an approximate index can replace this one behind
// the same interface if that ever changes.
type Flat struct {
	dim  int
	vecs [][]float32
}

// Build loads vectors into a new index. The dimension is fixed by the first
// vector; any vector of a different length fails the whole build.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyBuild
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-length vector at position 0", ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has length %d, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	vecs := make([][]float32, len(vectors))
	for i, v := range vectors {
		vecs[i] = append([]float32(nil), v...)
	}
	return &Flat{dim: dim, vecs: vecs}, nil
}

// Dimension returns the vector dimension fixed at build or load time.
func (f *Flat) Dimension() int {
	if f == nil {
		return 0
	}
	return f.dim
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int {
	if f == nil {
		return 0
	}
	return len(f.vecs)
}

// Query returns the top k stored vectors by inner product, highest score
// first, length min(k, N). Ties break by ascending position so two queries
// with the same vector always return identical ordered results.
func (f *Flat) Query(query []float32, k int) ([]Hit, error) {
	if f == nil || len(f.vecs) == 0 {
		return nil, ErrNotBuilt
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has length %d, index dimension is %d", ErrDimensionMismatch, len(query), f.dim)
	}

	hits := make([]Hit, len(f.vecs))
	for i, v := range f.vecs {
		hits[i] = Hit{Position: i, Score: dot(query, v)}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Position < hits[b].Position
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// dot accumulates in float64 to avoid float32 rounding drift across platforms.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
