package mcp

import (
	"context"
	"io"
	"net/http"
	"os"

	errors "github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v7"
	logSDK "github.com/Laisky/go-utils/v6/log"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/exa-search-mcp/internal/mcp/tools"
	"github.com/Laisky/exa-search-mcp/library/log"
	"github.com/Laisky/exa-search-mcp/library/search"
)

type ctxKey string

const (
	keyAuthorization ctxKey = "authorization"
)

// ServerName identifies this MCP server to connecting hosts.
const ServerName = "exa-search-mcp"

// ServerVersion is reported during the MCP initialize handshake.
const ServerVersion = "1.0.0"

// Server wraps the MCP server state for both the stdio and HTTP transports.
type Server struct {
	mcpServer *srv.MCPServer
	handler   http.Handler
	logger    logSDK.Logger

	semanticSearch  tools.Tool
	pageContent     tools.Tool
	findSimilar     tools.Tool
	recentSearch    tools.Tool
	searchByExample tools.Tool
}

// NewServer constructs an MCP server exposing the Exa search tools.
// Tools are registered according to the provided settings; the provider is
// the only stateful dependency and is shared read-only across invocations.
func NewServer(provider search.Provider, logger logSDK.Logger, settings ToolsSettings, clock tools.Clock) (*Server, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		logger = log.Logger
	}

	hooks := newMCPHooks(logger.Named("mcp_hooks"))

	mcpServer := srv.NewMCPServer(
		ServerName,
		ServerVersion,
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use the Exa-powered tools to run semantic web searches, extract page content, and discover similar or recent pages."),
		srv.WithRecovery(),
		srv.WithHooks(hooks),
	)

	s := &Server{
		mcpServer: mcpServer,
		handler: srv.NewStreamableHTTPServer(
			mcpServer,
			srv.WithHTTPContextFunc(newHTTPContextFunc(logger.Named("mcp_http"))),
		),
		logger: logger.Named("mcp"),
	}

	toolLogger := logger.Named("mcp_tools")

	if settings.SemanticSearchEnabled {
		tool, err := tools.NewSemanticSearchTool(provider, toolLogger.Named("search_web_semantic"))
		if err != nil {
			return nil, errors.Wrap(err, "create search_web_semantic tool")
		}
		s.semanticSearch = tool
		mcpServer.AddTool(tool.Definition(), s.handleSemanticSearch)
	}

	if settings.PageContentEnabled {
		tool, err := tools.NewPageContentTool(provider, toolLogger.Named("extract_page_content"))
		if err != nil {
			return nil, errors.Wrap(err, "create extract_page_content tool")
		}
		s.pageContent = tool
		mcpServer.AddTool(tool.Definition(), s.handlePageContent)
	}

	if settings.FindSimilarEnabled {
		tool, err := tools.NewFindSimilarTool(provider, toolLogger.Named("find_similar_pages"))
		if err != nil {
			return nil, errors.Wrap(err, "create find_similar_pages tool")
		}
		s.findSimilar = tool
		mcpServer.AddTool(tool.Definition(), s.handleFindSimilar)
	}

	if settings.RecentSearchEnabled {
		tool, err := tools.NewRecentSearchTool(provider, toolLogger.Named("search_recent_content"), clock)
		if err != nil {
			return nil, errors.Wrap(err, "create search_recent_content tool")
		}
		s.recentSearch = tool
		mcpServer.AddTool(tool.Definition(), s.handleRecentSearch)
	}

	if settings.SearchByExampleEnabled {
		tool, err := tools.NewSearchByExampleTool(provider, toolLogger.Named("search_by_example_text"))
		if err != nil {
			return nil, errors.Wrap(err, "create search_by_example_text tool")
		}
		s.searchByExample = tool
		mcpServer.AddTool(tool.Definition(), s.handleSearchByExample)
	}

	return s, nil
}

// newHTTPContextFunc stores the Authorization header and the request-scoped
// logger into the request context before tool handlers run.
func newHTTPContextFunc(logger logSDK.Logger) srv.HTTPContextFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		ctx = context.WithValue(ctx, keyAuthorization, r.Header.Get("Authorization"))
		return gmw.SetLogger(ctx, logger)
	}
}

// Handler returns the HTTP handler that should be mounted to serve MCP traffic.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeStdio blocks serving MCP over stdin/stdout until the stream closes or
// ctx is canceled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveStdio(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serveStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := srv.NewStdioServer(s.mcpServer)
	stdio.SetContextFunc(func(ctx context.Context) context.Context {
		return gmw.SetLogger(ctx, s.logger.Named("stdio"))
	})

	if err := stdio.Listen(ctx, in, out); err != nil {
		return errors.Wrap(err, "serve mcp over stdio")
	}
	return nil
}
