// ABOUTME: Unit tests for the paired-artifact search engine
// ABOUTME: Covers save/load round-trips, missing and mismatched artifacts
package search

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/assessment-recommender/internal/catalog"
	"github.com/harper/assessment-recommender/internal/index"
	"github.com/harper/assessment-recommender/internal/models"
)

func testVectors() [][]float32 {
	return [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

func testRecords() []models.Assessment {
	return []models.Assessment{
		{Name: "Cognitive Test", URL: "https://example.com/cog", TestType: "Cognitive", Remote: "Yes", Adaptive: "Yes", Duration: "30 min", Description: "cognitive reasoning test"},
		{Name: "Personality Survey", URL: "https://example.com/pers", TestType: "Personality", Remote: "Yes", Adaptive: "No", Duration: "45 min", Description: "personality work-style survey"},
		{Name: "Leadership Judgment", URL: "https://example.com/lead", TestType: "Situational", Remote: "No", Adaptive: "No", Duration: "60 min", Description: "leadership situational judgment"},
	}
}

func TestBuild_LengthMismatch(t *testing.T) {
	_, err := Build(testVectors(), testRecords()[:2])
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestBuild_MixedDimensions(t *testing.T) {
	vectors := [][]float32{{1, 0}, {0, 1, 0}, {0, 0}}
	_, err := Build(vectors, testRecords())
	if !errors.Is(err, index.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEngine_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "assessments_index.bin")
	catalogPath := filepath.Join(dir, "assessments.csv")

	engine, err := Build(testVectors(), testRecords())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := engine.Save(indexPath, catalogPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(indexPath, catalogPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != engine.Len() {
		t.Errorf("loaded len = %d, want %d", loaded.Len(), engine.Len())
	}
	if loaded.Dimension() != 3 {
		t.Errorf("loaded dimension = %d, want 3", loaded.Dimension())
	}

	// Query results must match the pre-save engine for fixed probes
	probes := [][]float32{
		{0.9, 0.1, 0},
		{0.1, 0.8, 0.1},
		{0, 0.2, 0.9},
	}
	for _, probe := range probes {
		want, err := engine.Search(probe, 3)
		if err != nil {
			t.Fatalf("pre-save search failed: %v", err)
		}
		got, err := loaded.Search(probe, 3)
		if err != nil {
			t.Fatalf("post-load search failed: %v", err)
		}
		for i := range want {
			if got[i].Position != want[i].Position {
				t.Errorf("probe %v hit %d position = %d, want %d", probe, i, got[i].Position, want[i].Position)
			}
			if math.Abs(got[i].Score-want[i].Score) > 1e-6 {
				t.Errorf("probe %v hit %d score = %v, want %v", probe, i, got[i].Score, want[i].Score)
			}
		}
	}

	// Table rows come back in the same order with the same fields
	for i, want := range testRecords() {
		if loaded.Table()[i] != want {
			t.Errorf("table row %d = %+v, want %+v", i, loaded.Table()[i], want)
		}
	}
}

func TestLoad_MissingArtifacts(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.bin"), filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("expected ErrArtifactMissing, got %v", err)
	}
}

func TestLoad_OneArtifactMissing(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index.bin")
	catalogPath := filepath.Join(dir, "catalog.csv")

	engine, err := Build(testVectors(), testRecords())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := engine.Save(indexPath, catalogPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.Remove(catalogPath); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(indexPath, catalogPath); !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("expected ErrArtifactMissing with only blob present, got %v", err)
	}
}

func TestLoad_CountMismatchIsCorrupt(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index.bin")
	catalogPath := filepath.Join(dir, "catalog.csv")

	engine, err := Build(testVectors(), testRecords())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := engine.Save(indexPath, catalogPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Rewrite the catalog with one row missing
	short := catalog.Table(testRecords()[:2])
	if err := short.WriteFile(catalogPath); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(indexPath, catalogPath); !errors.Is(err, ErrArtifactCorrupt) {
		t.Errorf("expected ErrArtifactCorrupt on count mismatch, got %v", err)
	}
}

func TestLoad_CorruptBlob(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index.bin")
	catalogPath := filepath.Join(dir, "catalog.csv")

	if err := os.WriteFile(indexPath, []byte("not an index"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := catalog.Table(testRecords()).WriteFile(catalogPath); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(indexPath, catalogPath); !errors.Is(err, ErrArtifactCorrupt) {
		t.Errorf("expected ErrArtifactCorrupt for bad blob, got %v", err)
	}
}

func TestSave_NotBuilt(t *testing.T) {
	var e *Engine
	if err := e.Save("a.bin", "b.csv"); !errors.Is(err, index.ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt, got %v", err)
	}
}
