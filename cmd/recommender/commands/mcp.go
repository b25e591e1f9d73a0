// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to request recommendations via stdio
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
	"github.com/harper/assessment-recommender/internal/mcp"
	"github.com/harper/assessment-recommender/internal/recommend"
	"github.com/harper/assessment-recommender/internal/search"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the recommender as an MCP (Model Context Protocol) server,
enabling LLM agents to request assessment recommendations and
reload the index via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  recommender mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "recommender": {
  #       "command": "recommender",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr as JSON; stdout belongs to the MCP protocol
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
		log.Info("index loaded", zap.Int("assessments", engine.Len()))
	case errors.Is(err, search.ErrArtifactMissing):
		log.Warn("index artifacts missing; use the reload_index tool after building")
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

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Assessment Recommender",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, svc, cfg.IndexPath, cfg.CatalogPath, log)

	log.Info("mcp server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	return nil
}
