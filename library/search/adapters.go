// Package search defines provider-neutral search payloads and the adapter
// bridging them to the Exa client.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/exa-search-mcp/library/search/exa"
)

const (
	// snippetLimit caps the text carried per search result entry.
	snippetLimit = 500
	// contentLimit caps the extracted page text returned to the caller.
	contentLimit = 3000
)

// Provider exposes the high level search capabilities consumed by the MCP tools.
type Provider interface {
	// Search runs a semantic query and returns provider-ranked items.
	Search(ctx context.Context, query Query) ([]SearchResultItem, error)
	// Contents extracts the main text of each given URL.
	Contents(ctx context.Context, urls []string) ([]PageContent, error)
	// FindSimilar returns pages similar to the seed URL, excluding the seed itself.
	FindSimilar(ctx context.Context, url string, numResults int) ([]SearchResultItem, error)
}

// ExaProvider adapts the Exa REST client to the Provider interface.
type ExaProvider struct {
	client *exa.Client
}

// NewExaProvider wraps the provided Exa client. It returns an error when the
// client is nil.
func NewExaProvider(client *exa.Client) (*ExaProvider, error) {
	if client == nil {
		return nil, errors.New("exa client cannot be nil")
	}
	return &ExaProvider{client: client}, nil
}

// Search executes the query via /search and converts the response items.
func (p *ExaProvider) Search(ctx context.Context, query Query) ([]SearchResultItem, error) {
	req := exa.SearchRequest{
		Query:              query.Text,
		NumResults:         query.NumResults,
		StartPublishedDate: query.StartPublishedDate,
		// Ask for page text so results carry a snippet, not just a link.
		Contents: &exa.ContentsOptions{Text: true},
	}

	if query.Neural {
		// Pure embedding similarity on the raw text sample; no query rewriting.
		req.Type = "neural"
		req.UseAutoprompt = boolPtr(false)
	} else {
		req.UseAutoprompt = boolPtr(true)
	}

	resp, err := p.client.Search(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "exa search failed")
	}

	return convertResults(resp.Results, ""), nil
}

// Contents extracts page text via /contents. URLs the provider could not
// retrieve are simply absent from the returned slice.
func (p *ExaProvider) Contents(ctx context.Context, urls []string) ([]PageContent, error) {
	resp, err := p.client.Contents(ctx, exa.ContentsRequest{URLs: urls, Text: true})
	if err != nil {
		return nil, errors.Wrap(err, "exa contents failed")
	}

	pages := make([]PageContent, 0, len(resp.Results))
	for _, result := range resp.Results {
		if strings.TrimSpace(result.URL) == "" {
			continue
		}

		text := strings.TrimSpace(result.Text)
		page := PageContent{
			URL:        result.URL,
			Title:      result.Title,
			Content:    text,
			TotalChars: len(text),
		}
		if len(text) > contentLimit {
			page.Content = truncateAtRuneBoundary(text, contentLimit)
			page.Truncated = true
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// FindSimilar queries /findSimilar and drops the seed URL from the results.
func (p *ExaProvider) FindSimilar(ctx context.Context, url string, numResults int) ([]SearchResultItem, error) {
	resp, err := p.client.FindSimilar(ctx, exa.FindSimilarRequest{
		URL:                 url,
		NumResults:          numResults,
		ExcludeSourceDomain: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "exa find similar failed")
	}

	return convertResults(resp.Results, url), nil
}

// convertResults maps Exa entries into neutral items, skipping entries
// without a URL and any entry matching the excluded seed URL.
func convertResults(results []exa.Result, excludeURL string) []SearchResultItem {
	items := make([]SearchResultItem, 0, len(results))
	for _, result := range results {
		url := strings.TrimSpace(result.URL)
		if url == "" {
			continue
		}
		if excludeURL != "" && strings.EqualFold(strings.TrimRight(url, "/"), strings.TrimRight(excludeURL, "/")) {
			continue
		}

		snippet := strings.TrimSpace(result.Text)
		if len(snippet) > snippetLimit {
			snippet = truncateAtRuneBoundary(snippet, snippetLimit)
		}

		items = append(items, SearchResultItem{
			URL:           url,
			Title:         result.Title,
			Snippet:       snippet,
			PublishedDate: result.PublishedDate,
			Score:         result.Score,
		})
	}
	return items
}

// truncateAtRuneBoundary cuts s to at most limit bytes without splitting a
// multibyte rune, so truncated payloads stay valid UTF-8.
func truncateAtRuneBoundary(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func boolPtr(v bool) *bool {
	return &v
}
