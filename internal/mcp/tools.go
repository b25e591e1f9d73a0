// ABOUTME: MCP tool definitions and registration for the recommender server
// ABOUTME: Exposes recommendation and index reload tools over stdio
package mcp

import (
	"go.uber.org/zap"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/assessment-recommender/internal/recommend"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, service *recommend.Service, indexPath, catalogPath string, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	handlers := &Handlers{
		service:     service,
		indexPath:   indexPath,
		catalogPath: catalogPath,
		log:         log,
	}

	// 1. recommend_assessments - rank catalog entries against a job description
	server.AddTool(mcp.Tool{
		Name:        "recommend_assessments",
		Description: "Recommend talent assessments for a job description. Returns a ranked list with similarity scores and catalog metadata.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Job description or natural-language query to match assessments against",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of recommendations to return, 1-10 (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RecommendAssessments)

	// 2. reload_index - pick up freshly built artifacts without a restart
	server.AddTool(mcp.Tool{
		Name:        "reload_index",
		Description: "Reload the assessment index and catalog from disk. Use after rebuilding the index to serve the new data without restarting.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ReloadIndex)

	return handlers
}
