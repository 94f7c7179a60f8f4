// Package mcp wires the Exa-backed tools into an MCP server.
package mcp

import (
	gconfig "github.com/Laisky/go-config/v2"
)

// ToolsSettings captures runtime configuration for enabling or disabling individual MCP tools.
type ToolsSettings struct {
	SemanticSearchEnabled  bool
	PageContentEnabled     bool
	FindSimilarEnabled     bool
	RecentSearchEnabled    bool
	SearchByExampleEnabled bool
}

// LoadToolsSettingsFromConfig reads the MCP tools configuration and returns a ToolsSettings instance.
// By default, all tools are enabled unless explicitly disabled in the configuration.
func LoadToolsSettingsFromConfig() ToolsSettings {
	return ToolsSettings{
		SemanticSearchEnabled:  boolFromConfig("settings.mcp.tools.search_web_semantic.enabled", true),
		PageContentEnabled:     boolFromConfig("settings.mcp.tools.extract_page_content.enabled", true),
		FindSimilarEnabled:     boolFromConfig("settings.mcp.tools.find_similar_pages.enabled", true),
		RecentSearchEnabled:    boolFromConfig("settings.mcp.tools.search_recent_content.enabled", true),
		SearchByExampleEnabled: boolFromConfig("settings.mcp.tools.search_by_example_text.enabled", true),
	}
}

// AllToolsEnabled returns the default settings with every tool switched on.
func AllToolsEnabled() ToolsSettings {
	return ToolsSettings{
		SemanticSearchEnabled:  true,
		PageContentEnabled:     true,
		FindSimilarEnabled:     true,
		RecentSearchEnabled:    true,
		SearchByExampleEnabled: true,
	}
}

// boolFromConfig retrieves a boolean configuration value with a default fallback.
func boolFromConfig(key string, def bool) bool {
	value := gconfig.S.Get(key)
	switch v := value.(type) {
	case nil:
		return def
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch v {
		case "true", "True", "TRUE", "1", "yes", "Yes", "YES":
			return true
		case "false", "False", "FALSE", "0", "no", "No", "NO":
			return false
		default:
			return def
		}
	default:
		return def
	}
}
