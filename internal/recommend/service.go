// ABOUTME: Recommendation service orchestrating embed, search, format, enhance
// ABOUTME: Holds the active engine behind an atomic pointer for safe reloads
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/harper/assessment-recommender/internal/embedding"
	"github.com/harper/assessment-recommender/internal/models"
	"github.com/harper/assessment-recommender/internal/search"
)

// Result count bounds for one recommendation request.
const (
	MinResults     = 1
	MaxResults     = 10
	DefaultResults = 5
)

var (
	// ErrEmptyQuery is returned for empty or whitespace-only queries.
	ErrEmptyQuery = errors.New("recommend: query is empty")
	// ErrInvalidK is returned when k is outside [MinResults, MaxResults].
	ErrInvalidK = errors.New("recommend: k out of range")
	// ErrNotReady is returned when no index has been built or loaded yet.
	// The operator must run an index build before retrying.
	ErrNotReady = errors.New("recommend: index not loaded")
)

// Enhancer augments a formatted response with free-text commentary.
// Implementations must treat their own failure as non-fatal and return nil;
// enhancement can never turn a successful recommendation into an error.
type Enhancer interface {
	Enhance(ctx context.Context, query string, results []models.Recommendation) map[string]any
}

// Service runs end-to-end recommendation requests. It borrows the engine per
// request and never mutates it, so concurrent requests need no locking; the
// engine reference itself is swapped atomically on reload.
type Service struct {
	engine    atomic.Pointer[search.Engine]
	generator *embedding.Generator
	enhancer  Enhancer
	log       *zap.Logger
}

// NewService creates a Service without an engine; callers install one with
// SetEngine once it is built or loaded.
func NewService(generator *embedding.Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{generator: generator, log: log}
}

// SetEngine installs a fully built engine. In-flight requests keep the engine
// they started with; new requests see the replacement. Build the new engine
// completely before calling this.
func (s *Service) SetEngine(e *search.Engine) {
	s.engine.Store(e)
}

// SetEnhancer installs an optional best-effort enhancer.
func (s *Service) SetEnhancer(e Enhancer) {
	s.enhancer = e
}

// Ready reports whether an engine is loaded and requests can be served.
func (s *Service) Ready() bool {
	return s.engine.Load() != nil
}

// Recommend runs one request: validate, embed, search, format, then attempt
// enhancement. The response always carries a results list; enhancement is
// attached only when it succeeded.
func (s *Service) Recommend(ctx context.Context, query string, k int) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if k < MinResults || k > MaxResults {
		return nil, fmt.Errorf("%w: k must be in [%d, %d], got %d", ErrInvalidK, MinResults, MaxResults, k)
	}
	engine := s.engine.Load()
	if engine == nil {
		return nil, ErrNotReady
	}

	vector := s.generator.Embed(ctx, query)
	hits, err := engine.Search(vector, k)
	if err != nil {
		return nil, err
	}

	resp := Format(hits, engine.Table(), s.log)

	if s.enhancer != nil {
		if enhanced := s.enhancer.Enhance(ctx, query, resp.Results); enhanced != nil {
			resp.Enhanced = SanitizeMap(enhanced)
		}
	}
	return resp, nil
}
