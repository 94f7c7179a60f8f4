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

// RecentSearchTool implements the search_recent_content MCP tool.
type RecentSearchTool struct {
	provider SearchProvider
	logger   logSDK.Logger
	clock    Clock
}

// NewRecentSearchTool constructs a RecentSearchTool with the provided dependencies.
// The clock is injectable so tests can pin the recency window.
func NewRecentSearchTool(provider SearchProvider, logger logSDK.Logger, clock Clock) (*RecentSearchTool, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if clock == nil {
		clock = time.Now
	}

	return &RecentSearchTool{
		provider: provider,
		logger:   logger,
		clock:    clock,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *RecentSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"search_recent_content",
		mcp.WithDescription("Search for recent web content published within a specific time period. Use this when you need current information, recent news, or recently published articles on a topic."),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Search query for recent content."),
		),
		mcp.WithNumber(
			"days_back",
			mcp.Description("Number of days back to search, e.g. 7 for last week, 30 for last month (1-365, default 7)."),
		),
		mcp.WithNumber(
			"num_results",
			mcp.Description("Number of results to return (1-20, default 5)."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the search_recent_content tool logic.
func (t *RecentSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return mcp.NewToolResultError("query cannot be empty"), nil
	}

	daysBack := clampInt(readIntArgWithDefault(req, "days_back", defaultDaysBack), 1, maxDaysBack)
	numResults := numResultsArg(req)

	startDate := t.clock().UTC().AddDate(0, 0, -daysBack).Format("2006-01-02")

	t.logger.Debug("search_recent_content started",
		zap.Int("query_len", len(query)),
		zap.Int("days_back", daysBack),
		zap.String("start_date", startDate),
	)

	items, err := t.provider.Search(ctx, searchlib.Query{
		Text:               query,
		NumResults:         numResults,
		StartPublishedDate: startDate,
	})
	if err != nil {
		t.logger.Error("search_recent_content failed", zap.Error(err), zap.Int("query_len", len(query)))
		return mcp.NewToolResultError(fmt.Sprintf("recent content search failed: %v", err)), nil
	}

	t.logger.Debug("search_recent_content completed",
		zap.Int("query_len", len(query)),
		zap.Int("results_count", len(items)),
	)

	toolResult, err := mcp.NewToolResultJSON(searchlib.SimplifiedSearchResult{Results: items})
	if err != nil {
		t.logger.Error("encode recent search result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode recent search result"), nil
	}

	return toolResult, nil
}
