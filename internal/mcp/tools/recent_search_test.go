package tools

import (
	"context"
	"testing"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/exa-search-mcp/library/log"
)

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

func TestRecentSearchHandleEmptyQuery(t *testing.T) {
	provider := &stubSearchProvider{}
	tool := mustRecentSearchTool(t, provider, fixedClock(time.Unix(0, 0)))

	result, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query": "",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Zero(t, provider.calls)
}

func TestRecentSearchComputesStartDate(t *testing.T) {
	now := time.Date(2025, time.October, 25, 12, 0, 0, 0, time.UTC)
	provider := &stubSearchProvider{}
	tool := mustRecentSearchTool(t, provider, fixedClock(now))

	_, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query":     "semantic search news",
		"days_back": float64(30),
	}))
	require.NoError(t, err)

	require.Len(t, provider.queries, 1)
	require.Equal(t, "2025-09-25", provider.queries[0].StartPublishedDate)
	require.False(t, provider.queries[0].Neural)
}

func TestRecentSearchDefaultsDaysBack(t *testing.T) {
	now := time.Date(2025, time.October, 25, 12, 0, 0, 0, time.UTC)
	provider := &stubSearchProvider{}
	tool := mustRecentSearchTool(t, provider, fixedClock(now))

	_, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query": "semantic search news",
	}))
	require.NoError(t, err)

	require.Len(t, provider.queries, 1)
	require.Equal(t, "2025-10-18", provider.queries[0].StartPublishedDate)
}

func TestRecentSearchClampsDaysBack(t *testing.T) {
	now := time.Date(2025, time.October, 25, 12, 0, 0, 0, time.UTC)
	provider := &stubSearchProvider{}
	tool := mustRecentSearchTool(t, provider, fixedClock(now))

	_, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query":     "semantic search news",
		"days_back": float64(10000),
	}))
	require.NoError(t, err)

	require.Len(t, provider.queries, 1)
	require.Equal(t, now.AddDate(0, 0, -365).Format("2006-01-02"), provider.queries[0].StartPublishedDate)
}

func TestRecentSearchHandleProviderError(t *testing.T) {
	provider := &stubSearchProvider{err: errors.New("upstream down")}
	tool := mustRecentSearchTool(t, provider, fixedClock(time.Unix(0, 0)))

	result, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query": "news",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, toolResultText(t, result), "recent content search failed")
}

func mustRecentSearchTool(t *testing.T, provider SearchProvider, clock Clock) *RecentSearchTool {
	t.Helper()

	tool, err := NewRecentSearchTool(provider, log.Logger.Named("test_recent_search"), clock)
	require.NoError(t, err)
	return tool
}
