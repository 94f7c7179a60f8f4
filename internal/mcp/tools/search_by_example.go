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

// SearchByExampleTool implements the search_by_example_text MCP tool.
type SearchByExampleTool struct {
	provider SearchProvider
	logger   logSDK.Logger
}

// NewSearchByExampleTool constructs a SearchByExampleTool with the provided dependencies.
func NewSearchByExampleTool(provider SearchProvider, logger logSDK.Logger) (*SearchByExampleTool, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &SearchByExampleTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *SearchByExampleTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"search_by_example_text",
		mcp.WithDescription("Find web content similar to a provided text sample. Use this when you have a piece of text and want to find web pages with similar content, style, or topics."),
		mcp.WithString(
			"text",
			mcp.Required(),
			mcp.Description("The example text to find similar content for."),
		),
		mcp.WithNumber(
			"num_results",
			mcp.Description("Number of similar results to find (1-20, default 5)."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the search_by_example_text tool logic. The text sample is
// fed to the provider as a pure embedding similarity seed rather than a
// rewritten query.
func (t *SearchByExampleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return mcp.NewToolResultError("text cannot be empty"), nil
	}

	numResults := numResultsArg(req)

	t.logger.Debug("search_by_example_text started",
		zap.Int("text_len", len(text)),
		zap.Int("num_results", numResults),
	)

	items, err := t.provider.Search(ctx, searchlib.Query{
		Text:       text,
		NumResults: numResults,
		Neural:     true,
	})
	if err != nil {
		t.logger.Error("search_by_example_text failed", zap.Error(err), zap.Int("text_len", len(text)))
		return mcp.NewToolResultError(fmt.Sprintf("example text search failed: %v", err)), nil
	}

	t.logger.Debug("search_by_example_text completed",
		zap.Int("text_len", len(text)),
		zap.Int("results_count", len(items)),
	)

	toolResult, err := mcp.NewToolResultJSON(searchlib.SimplifiedSearchResult{Results: items})
	if err != nil {
		t.logger.Error("encode example search result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode example search result"), nil
	}

	return toolResult, nil
}
