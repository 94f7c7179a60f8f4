package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/exa-search-mcp/internal/mcp"
	"github.com/Laisky/exa-search-mcp/library/log"
)

var serverCMD = &cobra.Command{
	Use:   "server",
	Short: "start the MCP server",
	Long:  `serve the Exa search tools over stdio (default) or streamable HTTP`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if err := initialize(context.Background(), cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) {
	provider, err := buildProvider()
	if err != nil {
		log.Logger.Panic("build provider", zap.Error(err))
	}

	server, err := mcp.NewServer(provider, log.Logger, mcp.LoadToolsSettingsFromConfig(), time.Now)
	if err != nil {
		log.Logger.Panic("create mcp server", zap.Error(err))
	}

	switch transport := gconfig.Shared.GetString("transport"); transport {
	case "stdio":
		log.Logger.Info("serving mcp over stdio")
		if err := server.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Logger.Panic("serve stdio", zap.Error(err))
		}
	case "http":
		listen := gconfig.Shared.GetString("listen")
		log.Logger.Info("serving mcp over http", zap.String("listen", listen))

		mux := http.NewServeMux()
		mux.Handle("/mcp", server.Handler())

		httpServer := &http.Server{
			Addr:              listen,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := httpServer.ListenAndServe(); err != nil {
			log.Logger.Panic("serve http", zap.Error(err))
		}
	default:
		log.Logger.Panic("unknown transport, expected stdio or http",
			zap.String("transport", transport))
	}
}

func init() {
	serverCMD.Flags().String("transport", "stdio", "`stdio/http`")
	serverCMD.Flags().String("listen", "localhost:8080", "http listen address, like `localhost:8080`")
	rootCMD.AddCommand(serverCMD)
}
