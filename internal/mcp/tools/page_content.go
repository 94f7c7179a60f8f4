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

// PageContentTool implements the extract_page_content MCP tool.
type PageContentTool struct {
	provider ContentProvider
	logger   logSDK.Logger
}

// NewPageContentTool constructs a PageContentTool with the provided dependencies.
func NewPageContentTool(provider ContentProvider, logger logSDK.Logger) (*PageContentTool, error) {
	if provider == nil {
		return nil, errors.New("content provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &PageContentTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *PageContentTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"extract_page_content",
		mcp.WithDescription("Extract clean, readable text content from one or more web page URLs. Use this when you need to read or analyze the actual content of a webpage, removing HTML formatting and ads to get just the main text."),
		mcp.WithString(
			"url",
			mcp.Description("The complete URL of the webpage to extract content from."),
		),
		mcp.WithArray(
			"urls",
			mcp.Description("Alternative to url: a list of URLs to extract in one call."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the extract_page_content tool logic.
func (t *PageContentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	urls := requestedURLs(req)
	if len(urls) == 0 {
		return mcp.NewToolResultError("url (or urls) cannot be empty"), nil
	}

	t.logger.Debug("extract_page_content started", zap.Strings("urls", urls))

	pages, err := t.provider.Contents(ctx, urls)
	if err != nil {
		t.logger.Error("extract_page_content failed", zap.Error(err), zap.Strings("urls", urls))
		return mcp.NewToolResultError(fmt.Sprintf("content extraction failed: %v", err)), nil
	}

	if len(pages) == 0 {
		t.logger.Warn("extract_page_content returned no pages", zap.Strings("urls", urls))
		return mcp.NewToolResultError(fmt.Sprintf(
			"could not extract content from %s, the page might be inaccessible or require authentication",
			strings.Join(urls, ", "))), nil
	}

	missing := missingURLs(urls, pages)
	if len(missing) > 0 {
		t.logger.Warn("extract_page_content skipped some urls", zap.Strings("missing", missing))
	}

	toolResult, err := mcp.NewToolResultJSON(searchlib.ContentsResult{Pages: pages, Missing: missing})
	if err != nil {
		t.logger.Error("encode page content result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode page content result"), nil
	}

	return toolResult, nil
}

// requestedURLs collects the target URLs from either the url string argument
// or the urls array argument, dropping blanks.
func requestedURLs(req mcp.CallToolRequest) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}

	var urls []string
	if single, ok := args["url"].(string); ok {
		if trimmed := strings.TrimSpace(single); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	if list, ok := args["urls"].([]any); ok {
		for _, entry := range list {
			value, ok := entry.(string)
			if !ok {
				continue
			}
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
	}

	return urls
}

// missingURLs reports requested URLs with no corresponding page. The provider
// may return a canonicalized URL, so comparison ignores case and a trailing
// slash.
func missingURLs(requested []string, pages []searchlib.PageContent) []string {
	returned := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		returned[normalizeURLKey(page.URL)] = struct{}{}
	}

	var missing []string
	for _, url := range requested {
		if _, ok := returned[normalizeURLKey(url)]; !ok {
			missing = append(missing, url)
		}
	}
	return missing
}

func normalizeURLKey(url string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(url), "/"))
}
