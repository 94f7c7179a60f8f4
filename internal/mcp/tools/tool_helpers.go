package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	// defaultNumResults matches the provider default page size.
	defaultNumResults = 5
	// maxNumResults is the upper bound accepted from callers.
	maxNumResults = 20

	defaultDaysBack = 7
	maxDaysBack     = 365
)

// readIntArgWithDefault extracts an optional int argument with a default fallback.
func readIntArgWithDefault(req mcp.CallToolRequest, key string, def int) int {
	raw, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if _, exists := raw[key]; !exists {
		return def
	}
	switch value := raw[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		// MCP JSON numbers decode into float64
		return int(value)
	}
	return def
}

// clampInt bounds value to [low, high].
func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// numResultsArg reads num_results and clamps it to the provider bounds.
func numResultsArg(req mcp.CallToolRequest) int {
	return clampInt(readIntArgWithDefault(req, "num_results", defaultNumResults), 1, maxNumResults)
}
