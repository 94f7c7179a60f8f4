package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Laisky/errors/v2"
	mcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/exa-search-mcp/library/log"
	searchlib "github.com/Laisky/exa-search-mcp/library/search"
)

func TestSemanticSearchHandleEmptyQuery(t *testing.T) {
	provider := &stubSearchProvider{}
	tool := mustSemanticSearchTool(t, provider)

	result, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query": "   ",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "query cannot be empty", toolResultText(t, result))
	require.Zero(t, provider.calls, "no provider call may happen for an empty query")
}

func TestSemanticSearchHandleMissingQuery(t *testing.T) {
	provider := &stubSearchProvider{}
	tool := mustSemanticSearchTool(t, provider)

	result, err := tool.Handle(context.Background(), callToolRequest(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Zero(t, provider.calls)
}

func TestSemanticSearchHandleProviderError(t *testing.T) {
	provider := &stubSearchProvider{err: errors.New("search backend down")}
	tool := mustSemanticSearchTool(t, provider)

	result, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query": "golang",
	}))
	require.NoError(t, err)
	require.Equal(t, 1, provider.calls)
	require.True(t, result.IsError)
	require.Contains(t, toolResultText(t, result), "search failed: ")
	require.Contains(t, toolResultText(t, result), "search backend down")
}

func TestSemanticSearchHandleSuccess(t *testing.T) {
	score := 0.92
	provider := &stubSearchProvider{
		items: []searchlib.SearchResultItem{
			{
				URL:           "https://example.com",
				Title:         "Example",
				Snippet:       "Snippet",
				PublishedDate: "2025-08-01",
				Score:         &score,
			},
		},
	}
	tool := mustSemanticSearchTool(t, provider)

	result, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
		"query":       "recent advances in semantic search",
		"num_results": float64(5),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.Len(t, provider.queries, 1)
	require.Equal(t, 5, provider.queries[0].NumResults)
	require.False(t, provider.queries[0].Neural)

	payload := decodeSimplifiedResult(t, result)
	require.LessOrEqual(t, len(payload.Results), 5)
	for _, item := range payload.Results {
		require.NotEmpty(t, item.URL)
	}
	require.Equal(t, "https://example.com", payload.Results[0].URL)
}

func TestSemanticSearchClampsNumResults(t *testing.T) {
	provider := &stubSearchProvider{}
	tool := mustSemanticSearchTool(t, provider)

	for raw, want := range map[float64]int{
		0:   1,
		-3:  1,
		50:  20,
		7:   7,
		2.9: 2,
	} {
		provider.queries = nil
		_, err := tool.Handle(context.Background(), callToolRequest(map[string]any{
			"query":       "golang",
			"num_results": raw,
		}))
		require.NoError(t, err)
		require.Len(t, provider.queries, 1)
		require.Equal(t, want, provider.queries[0].NumResults, "raw num_results %v", raw)
	}
}

// stubSearchProvider records queries and returns canned items or an error.
type stubSearchProvider struct {
	items   []searchlib.SearchResultItem
	err     error
	queries []searchlib.Query
	calls   int
}

func (s *stubSearchProvider) Search(_ context.Context, query searchlib.Query) ([]searchlib.SearchResultItem, error) {
	s.calls++
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func mustSemanticSearchTool(t *testing.T, provider SearchProvider) *SemanticSearchTool {
	t.Helper()

	tool, err := NewSemanticSearchTool(provider, log.Logger.Named("test_semantic_search"))
	require.NoError(t, err)
	return tool
}

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func toolResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func decodeSimplifiedResult(t *testing.T, result *mcp.CallToolResult) searchlib.SimplifiedSearchResult {
	t.Helper()

	var payload searchlib.SimplifiedSearchResult
	require.NoError(t, json.Unmarshal([]byte(toolResultText(t, result)), &payload))
	return payload
}
