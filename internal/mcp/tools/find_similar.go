package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	searchlib "github.com/Laisky/exa-search-mcp/library/search"
)

// FindSimilarTool implements the find_similar_pages MCP tool.
type FindSimilarTool struct {
	provider SimilarityProvider
	logger   logSDK.Logger
}

// NewFindSimilarTool constructs a FindSimilarTool with the provided dependencies.
func NewFindSimilarTool(provider SimilarityProvider, logger logSDK.Logger) (*FindSimilarTool, error) {
	if provider == nil {
		return nil, errors.New("similarity provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &FindSimilarTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *FindSimilarTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"find_similar_pages",
		mcp.WithDescription("Find web pages that are similar in content to a given URL. Use this for discovering related articles, finding competing content, or exploring content in the same domain space."),
		mcp.WithString(
			"url",
			mcp.Required(),
			mcp.Description("The URL to find similar content for."),
		),
		mcp.WithNumber(
			"num_results",
			mcp.Description("Number of similar pages to find (1-20, default 5)."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the find_similar_pages tool logic.
func (t *FindSimilarTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	urlValue, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	urlValue = strings.TrimSpace(urlValue)
	if urlValue == "" {
		return mcp.NewToolResultError("url cannot be empty"), nil
	}

	numResults := numResultsArg(req)

	t.logger.Debug("find_similar_pages started",
		zap.String("url", urlValue),
		zap.Int("num_results", numResults),
	)

	items, err := t.provider.FindSimilar(ctx, urlValue, numResults)
	if err != nil {
		t.logger.Error("find_similar_pages failed", zap.Error(err), zap.String("url", urlValue))
		return mcp.NewToolResultError(fmt.Sprintf("similar pages search failed: %v", err)), nil
	}

	t.logger.Debug("find_similar_pages completed",
		zap.String("url", urlValue),
		zap.Int("results_count", len(items)),
	)

	toolResult, err := mcp.NewToolResultJSON(searchlib.SimplifiedSearchResult{Results: items})
	if err != nil {
		t.logger.Error("encode find similar result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode find similar result"), nil
	}

	return toolResult, nil
}
