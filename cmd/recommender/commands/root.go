// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Shared helpers for config, logging, and embedding setup
package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/assessment-recommender/internal/config"
	"github.com/harper/assessment-recommender/internal/embedding"
	"github.com/harper/assessment-recommender/internal/logger"
)

// Global flags shared by all subcommands
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 ██████╗ ███████╗ ██████╗ ██████╗ ███╗   ███╗
 ██╔══██╗██╔════╝██╔════╝██╔═══██╗████╗ ████║
 ██████╔╝█████╗  ██║     ██║   ██║██╔████╔██║
 ██╔══██╗██╔══╝  ██║     ██║   ██║██║╚██╔╝██║
 ██║  ██║███████╗╚██████╗╚██████╔╝██║ ╚═╝ ██║
 ╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚═════╝ ╚═╝     ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommender",
		Short: "Semantic assessment recommendation engine",
		Long: banner + `
Recommender matches job descriptions to talent assessments using
embedding similarity search over a local vector index.

Build an index from an assessment catalog, then query it from the
command line, over HTTP, or through MCP.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format (table or json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewRecommendCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// newLogger builds a logger honoring the global verbosity flags. Server modes
// pass json=true for machine-readable logs.
func newLogger(json bool) (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	return logger.New(json, verbose)
}

// newGenerator wires the embedding pipeline from config: OpenAI when an API
// key is present, deterministic fallback otherwise.
func newGenerator(cfg *config.Config, log *zap.Logger) (*embedding.Generator, error) {
	var primary embedding.Provider
	if cfg.OpenAIKey != "" {
		openAI, err := embedding.NewOpenAI(embedding.OpenAIConfig{
			APIKey:     cfg.OpenAIKey,
			Model:      cfg.EmbeddingModel,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			return nil, err
		}
		primary = openAI
	} else {
		log.Warn("OPENAI_API_KEY not set, using deterministic fallback embeddings")
	}
	return embedding.NewGenerator(primary, cfg.VectorDimension, cfg.EmbedTimeout, log), nil
}
