package search

// SimplifiedSearchResult is the minimal response payload for MCP tools.
// It only contains the essential results without auxiliary metadata.
type SimplifiedSearchResult struct {
	Results []SearchResultItem `json:"results"`
}

// SearchResultItem captures a single entry returned by the search provider.
// PublishedDate and Score are omitted when the provider does not report them.
type SearchResultItem struct {
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Snippet       string   `json:"snippet,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Score         *float64 `json:"score,omitempty"`
}

// PageContent holds the extracted main text of a single page. Content is
// capped at the adapter layer; Truncated and TotalChars record the cut.
type PageContent struct {
	URL        string `json:"url"`
	Title      string `json:"title,omitempty"`
	Content    string `json:"content"`
	Truncated  bool   `json:"truncated,omitempty"`
	TotalChars int    `json:"total_chars,omitempty"`
}

// ContentsResult is the MCP payload for the page extraction tool. Missing
// lists requested URLs the provider returned no content for, so batch callers
// can tell partial extractions apart from full ones.
type ContentsResult struct {
	Pages   []PageContent `json:"pages"`
	Missing []string      `json:"missing,omitempty"`
}

// Query is the provider-neutral search request built by the MCP tools.
type Query struct {
	// Text is the natural-language query or the example text sample.
	Text string
	// NumResults bounds the returned item count, already clamped by the caller.
	NumResults int
	// StartPublishedDate restricts results to pages published on or after
	// this date (YYYY-MM-DD). Empty means no lower bound.
	StartPublishedDate string
	// Neural forces pure embedding similarity matching and disables query
	// rewriting, used by the search-by-example tool.
	Neural bool
}
