// ABOUTME: Serve command runs the HTTP recommendation API
// ABOUTME: Starts degraded when artifacts are missing so health stays observable
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/assessment-recommender/internal/config"
	"github.com/harper/assessment-recommender/internal/enhance"
	"github.com/harper/assessment-recommender/internal/httpapi"
	"github.com/harper/assessment-recommender/internal/recommend"
	"github.com/harper/assessment-recommender/internal/search"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP recommendation API",
		Long: `Run the HTTP recommendation API.

Serves GET /recommend, GET /health, and a welcome route. If the
index artifacts are missing the server starts in a degraded state
and reports it through /health instead of refusing to boot.

Examples:
  recommender serve
  recommender serve --addr :9000`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from LISTEN_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serveAddr == "" {
		serveAddr = cfg.ListenAddr
	}

	log, err := newLogger(true)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	generator, err := newGenerator(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing embeddings: %w", err)
	}
	svc := recommend.NewService(generator, log)

	engine, err := search.Load(cfg.IndexPath, cfg.CatalogPath)
	switch {
	case err == nil:
		svc.SetEngine(engine)
		log.Info("index loaded",
			zap.String("index_path", cfg.IndexPath),
			zap.Int("assessments", engine.Len()),
			zap.Int("dimension", engine.Dimension()),
		)
	case errors.Is(err, search.ErrArtifactMissing):
		log.Warn("index artifacts missing, serving degraded",
			zap.String("index_path", cfg.IndexPath),
			zap.String("catalog_path", cfg.CatalogPath),
		)
	default:
		return fmt.Errorf("loading index: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GeminiKey != "" {
		enhancer, err := enhance.New(ctx, cfg.GeminiKey, cfg.GeminiModel, log)
		if err != nil {
			log.Warn("enhancer unavailable, serving base results only", zap.Error(err))
		} else {
			svc.SetEnhancer(enhancer)
		}
	}

	log.Info("http server starting", zap.String("addr", serveAddr))
	return httpapi.NewServer(svc, log).ListenAndServe(ctx, serveAddr)
}
