package exa

// SearchRequest is the JSON payload for the /search endpoint. Field names
// follow the Exa REST API (camelCase).
type SearchRequest struct {
	Query              string           `json:"query"`
	NumResults         int              `json:"numResults,omitempty"`
	Type               string           `json:"type,omitempty"`
	UseAutoprompt      *bool            `json:"useAutoprompt,omitempty"`
	StartPublishedDate string           `json:"startPublishedDate,omitempty"`
	EndPublishedDate   string           `json:"endPublishedDate,omitempty"`
	IncludeDomains     []string         `json:"includeDomains,omitempty"`
	ExcludeDomains     []string         `json:"excludeDomains,omitempty"`
	Contents           *ContentsOptions `json:"contents,omitempty"`
}

// ContentsOptions selects which page content fields the API should return.
type ContentsOptions struct {
	Text bool `json:"text"`
}

// ContentsRequest is the JSON payload for the /contents endpoint.
type ContentsRequest struct {
	URLs []string `json:"urls"`
	Text bool     `json:"text"`
}

// FindSimilarRequest is the JSON payload for the /findSimilar endpoint.
type FindSimilarRequest struct {
	URL                 string `json:"url"`
	NumResults          int    `json:"numResults,omitempty"`
	ExcludeSourceDomain bool   `json:"excludeSourceDomain,omitempty"`
}

// Response models the shared envelope returned by all three endpoints.
type Response struct {
	RequestID        string   `json:"requestId,omitempty"`
	AutopromptString string   `json:"autopromptString,omitempty"`
	Results          []Result `json:"results"`
	Error            string   `json:"error,omitempty"`
	Message          string   `json:"message,omitempty"`
}

// Result is a single document entry in an Exa response. Score is a pointer
// because the API omits it on /contents responses.
type Result struct {
	ID            string   `json:"id,omitempty"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Author        string   `json:"author,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	Text          string   `json:"text,omitempty"`
}
