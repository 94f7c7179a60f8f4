// Package tools contains the MCP tool implementations exposed by the server.
package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/exa-search-mcp/library/search"
)

// Clock returns the current time. It enables deterministic tests.
type Clock func() time.Time

// Tool exposes the capabilities required by the MCP server registration lifecycle.
type Tool interface {
	Definition() mcp.Tool
	Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// SearchProvider abstracts the semantic search capability used by the
// query-driven tools.
type SearchProvider interface {
	Search(ctx context.Context, query search.Query) ([]search.SearchResultItem, error)
}

// ContentProvider abstracts page text extraction.
type ContentProvider interface {
	Contents(ctx context.Context, urls []string) ([]search.PageContent, error)
}

// SimilarityProvider abstracts URL-seeded similarity search.
type SimilarityProvider interface {
	FindSimilar(ctx context.Context, url string, numResults int) ([]search.SearchResultItem, error)
}
