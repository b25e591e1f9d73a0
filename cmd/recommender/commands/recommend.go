// ABOUTME: CLI command for one-shot assessment recommendations
// ABOUTME: Loads the artifact pair, embeds the query, prints ranked results
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/assessment-recommender/internal/config"
	"github.com/harper/assessment-recommender/internal/enhance"
	"github.com/harper/assessment-recommender/internal/recommend"
	"github.com/harper/assessment-recommender/internal/search"
)

var (
	recommendLimit   int
	recommendEnhance bool
)

// NewRecommendCmd creates the recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <job description>",
		Short: "Recommend assessments for a job description",
		Long: `Recommend assessments for a job description.

Embeds the query, searches the vector index, and prints a ranked
list of matching assessments with similarity scores.

Examples:
  recommender recommend "senior software engineer with leadership duties"
  recommender recommend --limit 10 "entry level analyst"
  recommender recommend --format json --enhance "sales manager"`,
		Args: cobra.ExactArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().IntVar(&recommendLimit, "limit", recommend.DefaultResults, "Maximum results to return (1-10)")
	cmd.Flags().BoolVar(&recommendEnhance, "enhance", false, "Add Gemini advisor commentary (requires GEMINI_API_KEY)")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(recommendLimit, "limit"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(false)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	engine, err := search.Load(cfg.IndexPath, cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading index (run 'recommender index' first): %w", err)
	}

	generator, err := newGenerator(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing embeddings: %w", err)
	}

	svc := recommend.NewService(generator, log)
	svc.SetEngine(engine)

	ctx := cmd.Context()
	if recommendEnhance {
		if cfg.GeminiKey == "" {
			return fmt.Errorf("--enhance requires GEMINI_API_KEY")
		}
		enhancer, err := enhance.New(ctx, cfg.GeminiKey, cfg.GeminiModel, log)
		if err != nil {
			return fmt.Errorf("initializing enhancer: %w", err)
		}
		svc.SetEnhancer(enhancer)
	}

	resp, err := svc.Recommend(ctx, args[0], recommendLimit)
	if err != nil {
		return fmt.Errorf("recommending: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RANK\tSCORE\tNAME\tTYPE\tDURATION\tURL\n")
	fmt.Fprintf(w, "----\t-----\t----\t----\t--------\t---\n")
	for _, r := range resp.Results {
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\t%s\t%s\n",
			r.Rank,
			r.SimilarityScore,
			truncate(r.Name, 40),
			truncate(r.TestType, 20),
			truncate(r.Duration, 15),
			r.URL)
	}
	w.Flush()

	if resp.Enhanced != nil {
		if summary, ok := resp.Enhanced["summary"].(string); ok && summary != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", summary)
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(resp.Results))
	}
	return nil
}
