// ABOUTME: Data model for catalogued assessments and ranked recommendations
// ABOUTME: Defines Assessment, Recommendation, and tri-state normalization
package models

import "strings"

// Tri-state values for the remote and adaptive fields
const (
	TriYes     = "Yes"
	TriNo      = "No"
	TriUnknown = "Unknown"
)

// Assessment represents one catalogued assessment product.
// URL is the canonical identifier and is unique within a loaded catalog.
type Assessment struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Remote      string `json:"remote"`
	Adaptive    string `json:"adaptive"`
	TestType    string `json:"test_type"`
}

// EmbeddingText returns the text embedded for this assessment at index-build time.
// Name, description, and test type are combined for richer context.
func (a Assessment) EmbeddingText() string {
	return a.Name + ". " + a.Description + ". Test type: " + a.TestType
}

// Recommendation is one ranked search result with the matched assessment's
// fields denormalized into it. SimilarityScore is always finite.
type Recommendation struct {
	Rank            int     `json:"rank"`
	SimilarityScore float64 `json:"similarity_score"`
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	Description     string  `json:"description"`
	Duration        string  `json:"duration"`
	Remote          string  `json:"remote"`
	Adaptive        string  `json:"adaptive"`
	TestType        string  `json:"test_type"`
}

// NormalizeTriState maps free-form scraped values onto Yes/No/Unknown.
// Catalog pages phrase these as "Yes"/"No" or "supported"/"not supported".
func NormalizeTriState(v string) string {
	s := strings.ToLower(strings.TrimSpace(v))
	switch {
	case s == "":
		return TriUnknown
	case strings.Contains(s, "not supported"):
		return TriNo
	case s == "yes" || s == "y" || s == "true" || strings.Contains(s, "supported"):
		return TriYes
	case s == "no" || s == "n" || s == "false":
		return TriNo
	default:
		return TriUnknown
	}
}
