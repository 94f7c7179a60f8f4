// Package exa implements a client for the Exa AI semantic search REST API.
package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	"github.com/Laisky/zap"
)

const (
	defaultEndpoint    = "https://api.exa.ai"
	httpRequestTimeout = 30 * time.Second
	// logBodyLimit caps the number of response bytes logged for debugging.
	logBodyLimit = 4096

	pathSearch      = "/search"
	pathContents    = "/contents"
	pathFindSimilar = "/findSimilar"
)

// Option configures the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to communicate with Exa.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithEndpoint overrides the Exa API base URL, primarily for testing.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(endpoint), "/")
		if trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// Client issues synchronous requests against the Exa REST API.
// One outbound call per method invocation; no retries.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient constructs an Exa API client with the provided credential.
// The apiKey must be non-empty at request time.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   strings.TrimSpace(apiKey),
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: httpRequestTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Search executes a semantic search query against /search.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.New("search query cannot be empty")
	}
	return c.post(ctx, pathSearch, req)
}

// Contents retrieves the extracted page text for one or more URLs via /contents.
func (c *Client) Contents(ctx context.Context, req ContentsRequest) (*Response, error) {
	if len(req.URLs) == 0 {
		return nil, errors.New("at least one url is required")
	}
	return c.post(ctx, pathContents, req)
}

// FindSimilar returns pages whose content is similar to the given URL via /findSimilar.
func (c *Client) FindSimilar(ctx context.Context, req FindSimilarRequest) (*Response, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, errors.New("url cannot be empty")
	}
	return c.post(ctx, pathFindSimilar, req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Response, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, errors.New("exa api key is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal exa %s request", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "create exa %s request", path)
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Transport boundaries stash the request-scoped logger into ctx via
	// gmw.SetLogger; fall through to the gmw default otherwise.
	logger := gmw.GetLogger(ctx).Named("exa_client")

	logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("body_len", len(body)),
	)

	startAt := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "send exa %s request", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read exa %s response body", path)
	}

	truncatedBody, truncated := truncateForLog(respBody, logBodyLimit)
	logger.Debug("incoming http response",
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("exa %s returned status %d: %s", path, resp.StatusCode, truncatedBody)
	}

	result := new(Response)
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, errors.Wrapf(err, "unmarshal exa %s response", path)
	}

	if result.Error != "" {
		return nil, errors.Errorf("exa %s reported error: %s", path, result.Error)
	}

	return result, nil
}

// truncateForLog limits the payload logged for debugging and reports whether truncation occurred.
func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}
	return string(body[:limit]), true
}
