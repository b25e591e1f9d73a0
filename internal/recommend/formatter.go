// ABOUTME: Result formatter joining index hits against the catalog table
// ABOUTME: Guarantees finite scores and JSON-safe output for every result
package recommend

import (
	"math"

	"go.uber.org/zap"

	"github.com/harper/assessment-recommender/internal/catalog"
	"github.com/harper/assessment-recommender/internal/index"
	"github.com/harper/assessment-recommender/internal/models"
)

// Response is the stable recommendation payload. Results is always present,
// possibly empty, so callers never need a null-check for it; Enhanced is
// attached only when enhancement succeeded.
type Response struct {
	Results  []models.Recommendation `json:"results"`
	Enhanced map[string]any          `json:"enhanced,omitempty"`
}

// Format joins hits, already rank-ordered by the index, with their catalog
// rows. A hit pointing outside the table is an internal inconsistency: it is
// logged and the row excluded rather than failing the request. Non-finite
// scores are replaced with 0.0 and logged. Ranks stay dense from 1 even when
// rows are excluded.
func Format(hits []index.Hit, table catalog.Table, log *zap.Logger) *Response {
	if log == nil {
		log = zap.NewNop()
	}

	results := make([]models.Recommendation, 0, len(hits))
	for _, h := range hits {
		if h.Position < 0 || h.Position >= len(table) {
			log.Error("hit position outside catalog table, excluding row",
				zap.Int("position", h.Position), zap.Int("rows", len(table)))
			continue
		}

		score := h.Score
		if math.IsNaN(score) || math.IsInf(score, 0) {
			log.Warn("non-finite similarity score replaced with 0.0",
				zap.Int("position", h.Position), zap.Float64("score", score))
			score = 0.0
		}

		a := table[h.Position]
		results = append(results, models.Recommendation{
			Rank:            len(results) + 1,
			SimilarityScore: score,
			Name:            a.Name,
			URL:             a.URL,
			Description:     a.Description,
			Duration:        a.Duration,
			Remote:          a.Remote,
			Adaptive:        a.Adaptive,
			TestType:        a.TestType,
		})
	}
	return &Response{Results: results}
}
