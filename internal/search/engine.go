// ABOUTME: Search engine pairing the flat vector index with its catalog table
// ABOUTME: Builds, saves, loads, and queries the companion artifacts together
package search

import (
	"errors"
	"fmt"
	"os"

	"github.com/harper/assessment-recommender/internal/catalog"
	"github.com/harper/assessment-recommender/internal/index"
	"github.com/harper/assessment-recommender/internal/models"
)

var (
	// ErrArtifactMissing is returned when either companion file is absent.
	ErrArtifactMissing = errors.New("search: index artifact missing")
	// ErrArtifactCorrupt is returned when the artifacts fail validation or
	// disagree with each other.
	ErrArtifactCorrupt = errors.New("search: index artifacts corrupt")
	// ErrLengthMismatch is returned when build inputs are not aligned.
	ErrLengthMismatch = errors.New("search: vectors and records length mismatch")
)

// Engine owns a built vector index and the metadata table aligned with it.
// The vector at position i corresponds to the table row at position i.
// An Engine is read-only after Build or Load and safe for concurrent searches.
type Engine struct {
	flat  *index.Flat
	table catalog.Table
}

// Build constructs an engine from aligned vectors and records.
func Build(vectors [][]float32, records []models.Assessment) (*Engine, error) {
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("%w: %d vectors for %d records", ErrLengthMismatch, len(vectors), len(records))
	}
	flat, err := index.Build(vectors)
	if err != nil {
		return nil, err
	}
	table := make(catalog.Table, len(records))
	copy(table, records)
	return &Engine{flat: flat, table: table}, nil
}

// Load reads the companion artifacts back into an engine. Either file being
// absent is ErrArtifactMissing; a blob that fails validation, an unreadable
// table, or a vector count that disagrees with the row count is
// ErrArtifactCorrupt. The dimension is recovered from the blob.
func Load(indexPath, catalogPath string) (*Engine, error) {
	for _, p := range []string{indexPath, catalogPath} {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, p)
			}
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
	}

	flat, err := index.ReadFile(indexPath)
	if err != nil {
		if errors.Is(err, index.ErrCorrupt) {
			return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
		}
		return nil, err
	}
	table, err := catalog.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactCorrupt, err)
	}
	if flat.Len() != len(table) {
		return nil, fmt.Errorf("%w: %d vectors but %d catalog rows", ErrArtifactCorrupt, flat.Len(), len(table))
	}
	return &Engine{flat: flat, table: table}, nil
}

// Save persists both companion artifacts. Each file is written to a temp path
// and renamed so a reader never observes a half-written file. Callers that
// need a fully consistent pair across both files should save each index
// version to fresh paths and swap references after both writes succeed.
func (e *Engine) Save(indexPath, catalogPath string) error {
	if e == nil || e.flat == nil {
		return index.ErrNotBuilt
	}
	if err := e.flat.WriteFile(indexPath); err != nil {
		return err
	}
	return e.table.WriteFile(catalogPath)
}

// Search returns the top k matches for the query vector.
func (e *Engine) Search(vector []float32, k int) ([]index.Hit, error) {
	if e == nil || e.flat == nil {
		return nil, index.ErrNotBuilt
	}
	return e.flat.Query(vector, k)
}

// Table returns the metadata table aligned with the index.
func (e *Engine) Table() catalog.Table {
	if e == nil {
		return nil
	}
	return e.table
}

// Len returns the number of indexed assessments.
func (e *Engine) Len() int {
	if e == nil {
		return 0
	}
	return e.flat.Len()
}

// Dimension returns the embedding dimension fixed at build or load time.
func (e *Engine) Dimension() int {
	if e == nil {
		return 0
	}
	return e.flat.Dimension()
}
