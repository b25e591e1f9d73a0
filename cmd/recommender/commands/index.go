// ABOUTME: CLI command to build the vector index from an assessment catalog
// ABOUTME: Cleans the catalog, embeds each entry, and writes the artifact pair
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/assessment-recommender/internal/catalog"
	"github.com/harper/assessment-recommender/internal/config"
	"github.com/harper/assessment-recommender/internal/search"
)

var (
	indexInput       string
	indexOutput      string
	indexCatalogPath string
)

// NewIndexCmd creates the index build command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the vector index from a catalog CSV",
		Long: `Build the vector index from a catalog CSV.

Reads raw assessment rows, applies the ingestion cleaning rules,
embeds each entry, and writes the index blob and cleaned catalog
side by side. The two output files are only valid as a pair.

Examples:
  recommender index --input raw_assessments.csv
  recommender index --input raw.csv --index out/index.bin --catalog out/catalog.csv`,
		RunE: runIndex,
	}

	cmd.Flags().StringVar(&indexInput, "input", "", "Raw catalog CSV to index (required)")
	cmd.Flags().StringVar(&indexOutput, "index", "", "Index blob output path (default from INDEX_PATH)")
	cmd.Flags().StringVar(&indexCatalogPath, "catalog", "", "Cleaned catalog output path (default from CATALOG_PATH)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if indexOutput == "" {
		indexOutput = cfg.IndexPath
	}
	if indexCatalogPath == "" {
		indexCatalogPath = cfg.CatalogPath
	}

	log, err := newLogger(false)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	raw, err := catalog.ReadFile(indexInput)
	if err != nil {
		return fmt.Errorf("reading input catalog: %w", err)
	}

	table := catalog.Clean(raw, log)
	if len(table) == 0 {
		return fmt.Errorf("no usable rows in %s after cleaning", indexInput)
	}
	log.Info("catalog cleaned",
		zap.Int("input_rows", len(raw)),
		zap.Int("kept_rows", len(table)),
	)

	generator, err := newGenerator(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing embeddings: %w", err)
	}

	ctx := cmd.Context()
	vectors := make([][]float32, 0, len(table))
	for i, a := range table {
		vectors = append(vectors, generator.Embed(ctx, a.EmbeddingText()))
		if verbose && (i+1)%50 == 0 {
			log.Debug("embedding progress", zap.Int("done", i+1), zap.Int("total", len(table)))
		}
	}

	engine, err := search.Build(vectors, table)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if err := engine.Save(indexOutput, indexCatalogPath); err != nil {
		return fmt.Errorf("saving index artifacts: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d assessments (dimension %d)\n", engine.Len(), engine.Dimension())
		fmt.Fprintf(cmd.OutOrStdout(), "Index:   %s\n", indexOutput)
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog: %s\n", indexCatalogPath)
	}
	return nil
}
