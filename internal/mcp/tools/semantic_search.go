package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	searchlib "github.com/Laisky/exa-search-mcp/library/search"
)

// SemanticSearchTool implements the search_web_semantic MCP tool.
type SemanticSearchTool struct {
	provider SearchProvider
	logger   logSDK.Logger
}

// NewSemanticSearchTool constructs a SemanticSearchTool with the provided dependencies.
func NewSemanticSearchTool(provider SearchProvider, logger logSDK.Logger) (*SemanticSearchTool, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &SemanticSearchTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *SemanticSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"search_web_semantic",
		mcp.WithDescription("Search the web using Exa AI's semantic search. Use this when you need to find web pages about a specific topic using natural language understanding rather than keyword matching. Returns ranked results with titles, URLs, and relevance scores."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Natural language search query describing what you're looking for."),
		),
		mcp.WithNumber(
			"num_results",
			mcp.Description("Number of results to return (1-20, default 5)."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the search_web_semantic tool logic.
func (t *SemanticSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return mcp.NewToolResultError("query cannot be empty"), nil
	}

	numResults := numResultsArg(req)

	start := time.Now().UTC()
	t.logger.Debug("search_web_semantic started",
		zap.Int("query_len", len(query)),
		zap.Int("num_results", numResults),
	)

	items, err := t.provider.Search(ctx, searchlib.Query{
		Text:       query,
		NumResults: numResults,
	})
	if err != nil {
		t.logger.Error("search_web_semantic failed", zap.Error(err), zap.Int("query_len", len(query)))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	t.logger.Debug("search_web_semantic completed",
		zap.Int("query_len", len(query)),
		zap.Int("results_count", len(items)),
		zap.Duration("duration", time.Since(start)),
	)

	toolResult, err := mcp.NewToolResultJSON(searchlib.SimplifiedSearchResult{Results: items})
	if err != nil {
		t.logger.Error("encode search result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode search result"), nil
	}

	return toolResult, nil
}
