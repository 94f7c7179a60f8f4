package mcp

import (
	"context"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/exa-search-mcp/internal/mcp/tools"
)

func (s *Server) handleSemanticSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, "search_web_semantic", s.semanticSearch, req)
}

func (s *Server) handlePageContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, "extract_page_content", s.pageContent, req)
}

func (s *Server) handleFindSimilar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, "find_similar_pages", s.findSimilar, req)
}

func (s *Server) handleRecentSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, "search_recent_content", s.recentSearch, req)
}

func (s *Server) handleSearchByExample(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, "search_by_example_text", s.searchByExample, req)
}

// invokeTool runs the tool and records the invocation outcome. Each call gets
// a uuid so log lines for one invocation can be correlated.
func (s *Server) invokeTool(ctx context.Context, name string, tool tools.Tool, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if tool == nil {
		return mcp.NewToolResultError(name + " is not configured"), nil
	}

	invocationID := uuid.NewString()
	start := time.Now().UTC()

	result, err := tool.Handle(ctx, req)
	s.recordToolInvocation(name, invocationID, time.Since(start), result, err)

	if err != nil {
		return result, errors.WithStack(err)
	}
	return result, nil
}

func (s *Server) recordToolInvocation(name, invocationID string, duration time.Duration, result *mcp.CallToolResult, invokeErr error) {
	fields := []zap.Field{
		zap.String("tool", name),
		zap.String("invocation_id", invocationID),
		zap.Duration("duration", duration),
	}

	if invokeErr != nil {
		s.logger.Error("tool invocation failed", append(fields, zap.Error(invokeErr))...)
		return
	}

	if result != nil && result.IsError {
		if msg := toolErrorMessage(result); msg != "" {
			fields = append(fields, zap.String("tool_error", msg))
		}
		s.logger.Warn("tool invocation returned error", fields...)
		return
	}

	s.logger.Info("tool invocation succeeded", fields...)
}

// toolErrorMessage pulls the first non-empty text content out of an error result.
func toolErrorMessage(result *mcp.CallToolResult) string {
	if result == nil || !result.IsError {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			txt := strings.TrimSpace(textContent.Text)
			if txt != "" {
				return txt
			}
		}
	}
	return ""
}
