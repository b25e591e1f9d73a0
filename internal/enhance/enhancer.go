// ABOUTME: Best-effort Gemini enhancer adding advisor commentary to results
// ABOUTME: Every failure is swallowed; base recommendations always win
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/harper/assessment-recommender/internal/models"
)

const defaultModel = "gemini-2.0-flash"

// Enhancer generates free-text commentary for a recommendation set using the
// Gemini API. A nil Enhancer, a failed API call, and unparseable output all
// yield a nil enhancement; enhancement can never turn a successful
// recommendation into a failed response.
type Enhancer struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// New creates an Enhancer for the Gemini API backend.
func New(ctx context.Context, apiKey, model string, log *zap.Logger) (*Enhancer, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Enhancer{client: client, model: model, log: log}, nil
}

// Enhance returns advisor commentary for the results, or nil when anything
// goes wrong along the way.
func (e *Enhancer) Enhance(ctx context.Context, query string, results []models.Recommendation) map[string]any {
	if e == nil || e.client == nil || len(results) == 0 {
		return nil
	}

	prompt, err := buildPrompt(query, results)
	if err != nil {
		e.log.Warn("building enhancement prompt failed", zap.Error(err))
		return nil
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), nil)
	if err != nil {
		e.log.Warn("enhancement request failed, returning base results", zap.Error(err))
		return nil
	}

	content, err := ParseEnhancement(collectText(resp))
	if err != nil {
		e.log.Warn("enhancement response unparseable, returning base results", zap.Error(err))
		return nil
	}
	return content
}

func buildPrompt(query string, results []models.Recommendation) (string, error) {
	resultsJSON, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Act as an expert talent assessment advisor. I'll provide you with a job description and a list of assessment recommendations from our system.

Job Description:
%s

Assessment Recommendations:
%s

Please provide the following:
1. A brief summary explaining why these assessments are relevant for the job description (2-3 sentences)
2. For each assessment, a short explanation of why it's specifically relevant to this role (1-2 sentences per assessment)
3. A suggested assessment sequence or bundle based on these recommendations

Format your response as JSON with the following structure:
{
  "summary": "Overall explanation of the recommendations...",
  "assessment_insights": [
    {
      "name": "Assessment Name",
      "relevance": "Why this assessment is relevant for the job..."
    }
  ],
  "recommended_sequence": "Suggestion for assessment sequence or bundle..."
}`, query, resultsJSON), nil
}

// collectText concatenates the textual parts of every candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(part.Text)
		}
	}
	return builder.String()
}

// ParseEnhancement extracts the JSON object from a model response that may be
// wrapped in prose or code fences.
func ParseEnhancement(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errors.New("no JSON object in response")
	}

	var content map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &content); err != nil {
		return nil, fmt.Errorf("parsing enhancement JSON: %w", err)
	}
	return content, nil
}
