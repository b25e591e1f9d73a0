// ABOUTME: Unit tests for the flat inner-product index
// ABOUTME: Covers build validation, query ordering, ties, and dimension checks
package index

import (
	"errors"
	"math"
	"testing"
)

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build(nil)
	if !errors.Is(err, ErrEmptyBuild) {
		t.Errorf("expected ErrEmptyBuild, got %v", err)
	}
}

func TestBuild_MixedDimensionsFails(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1},
	}
	_, err := Build(vectors)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestBuild_CopiesInput(t *testing.T) {
	src := [][]float32{{1, 0}, {0, 1}}
	f, err := Build(src)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Mutating the caller's slice must not affect the index
	src[0][0] = 99
	hits, err := f.Query([]float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if hits[0].Position != 0 || hits[0].Score != 1.0 {
		t.Errorf("index observed caller mutation: got position %d score %v", hits[0].Position, hits[0].Score)
	}
}

func TestQuery_RankingOrder(t *testing.T) {
	f, err := Build([][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	hits, err := f.Query([]float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].Position != 0 {
		t.Errorf("top hit position = %d, want 0", hits[0].Position)
	}
	if hits[1].Position != 2 {
		t.Errorf("second hit position = %d, want 2", hits[1].Position)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not sorted: score[%d]=%v > score[%d]=%v", i, hits[i].Score, i-1, hits[i-1].Score)
		}
	}
}

func TestQuery_KLargerThanN(t *testing.T) {
	f, _ := Build([][]float32{{1, 0}, {0, 1}})

	hits, err := f.Query([]float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected min(k, N)=2 hits, got %d", len(hits))
	}
}

func TestQuery_InvalidK(t *testing.T) {
	f, _ := Build([][]float32{{1, 0}})

	for _, k := range []int{0, -1, -10} {
		if _, err := f.Query([]float32{1, 0}, k); !errors.Is(err, ErrInvalidK) {
			t.Errorf("k=%d: expected ErrInvalidK, got %v", k, err)
		}
	}
}

func TestQuery_DimensionMismatch(t *testing.T) {
	f, _ := Build([][]float32{{1, 0, 0}})

	_, err := f.Query([]float32{1, 0}, 1)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestQuery_NotBuilt(t *testing.T) {
	var f *Flat
	if _, err := f.Query([]float32{1}, 1); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt on nil index, got %v", err)
	}

	empty := &Flat{}
	if _, err := empty.Query([]float32{1}, 1); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt on empty index, got %v", err)
	}
}

func TestQuery_TieBreaksByAscendingPosition(t *testing.T) {
	// Three identical vectors: all tie, order must be positions 0,1,2
	f, _ := Build([][]float32{
		{0.5, 0.5},
		{0.5, 0.5},
		{0.5, 0.5},
	})

	hits, err := f.Query([]float32{1, 1}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	for i, h := range hits {
		if h.Position != i {
			t.Errorf("tie order broken: hit %d has position %d", i, h.Position)
		}
	}
}

func TestQuery_Deterministic(t *testing.T) {
	f, _ := Build([][]float32{
		{0.3, 0.7},
		{0.7, 0.3},
		{0.5, 0.5},
		{0.5, 0.5},
	})
	query := []float32{0.6, 0.4}

	first, err := f.Query(query, 4)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	for run := 0; run < 10; run++ {
		again, err := f.Query(query, 4)
		if err != nil {
			t.Fatalf("Query failed on run %d: %v", run, err)
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d: hit %d = %+v, first run had %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"identical unit", []float32{1, 0}, []float32{1, 0}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"general", []float32{0.5, 0.5}, []float32{0.5, 0.5}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dot(tt.a, tt.b); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("dot = %v, want %v", got, tt.expected)
			}
		})
	}
}
