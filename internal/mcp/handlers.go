// ABOUTME: MCP tool handler implementations for the recommender server
// ABOUTME: Maps service errors to tool errors and formats JSON results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/assessment-recommender/internal/recommend"
	"github.com/harper/assessment-recommender/internal/search"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	service     *recommend.Service
	indexPath   string
	catalogPath string
	log         *zap.Logger
}

// RecommendAssessments handles the recommend_assessments tool
func (h *Handlers) RecommendAssessments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	k := request.GetInt("max_results", recommend.DefaultResults)

	resp, err := h.service.Recommend(ctx, query, k)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}

	payload, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding results failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// ReloadIndex handles the reload_index tool
func (h *Handlers) ReloadIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	engine, err := search.Load(h.indexPath, h.catalogPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reload failed: %v", err)), nil
	}

	h.service.SetEngine(engine)
	h.log.Info("index reloaded",
		zap.String("index_path", h.indexPath),
		zap.Int("assessments", engine.Len()),
		zap.Int("dimension", engine.Dimension()),
	)
	return mcp.NewToolResultText(fmt.Sprintf("Index reloaded: %d assessments, dimension %d", engine.Len(), engine.Dimension())), nil
}
