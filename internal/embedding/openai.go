// ABOUTME: OpenAI-backed embedding provider with retry and unit normalization
// ABOUTME: Defaults to text-embedding-3-small, backoff shared via internal/util
package embedding

import (
	"context"
	"fmt"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/assessment-recommender/internal/util"
)

// DefaultModel is the default embedding model.
const DefaultModel = openai.SmallEmbedding3

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
}

// OpenAI is a Provider backed by the OpenAI embeddings API.
type OpenAI struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAI creates an OpenAI embedding provider.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	model := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		model = DefaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &OpenAI{
		client:     openai.NewClient(cfg.APIKey),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Embed generates a unit-normalized embedding for text, retrying transient
// failures with exponential backoff.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(util.CalculateBackoff(o.retryDelay, attempt)):
			}
		}

		resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: o.model,
		})
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}
		return Normalize(resp.Data[0].Embedding), nil
	}

	return nil, fmt.Errorf("generating embedding after %d attempts: %w", o.maxRetries+1, lastErr)
}

// Normalize scales a vector to unit length so inner product equals cosine
// similarity. A zero vector is returned unchanged.
func Normalize(vec []float32) []float32 {
	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, x := range vec {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
