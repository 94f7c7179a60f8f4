// Package cmd defines the CLI surface of the Exa search MCP server.
package cmd

import (
	"context"
	"fmt"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/exa-search-mcp/library/config"
	"github.com/Laisky/exa-search-mcp/library/log"
	"github.com/Laisky/exa-search-mcp/library/search"
	"github.com/Laisky/exa-search-mcp/library/search/exa"
)

var rootCMD = &cobra.Command{
	Use:   "exa-search-mcp",
	Short: "exa-search-mcp",
	Long:  `MCP server exposing Exa AI semantic web search as tools`,
	Args:  gcmd.NoExtraArgs,
}

func initialize(ctx context.Context, cmd *cobra.Command) error {
	if err := gconfig.Shared.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind pflags")
	}

	setupSettings(ctx)
	setupLogger(ctx)

	return nil
}

func setupSettings(ctx context.Context) {
	if gconfig.Shared.GetBool("debug") {
		fmt.Println("run in debug mode")
		gconfig.Shared.Set("log-level", "debug")
	}

	config.LoadFromFile(gconfig.Shared.GetString("config"))
}

func setupLogger(ctx context.Context) {
	lvl := gconfig.Shared.GetString("log-level")
	if err := log.Logger.ChangeLevel(glog.Level(lvl)); err != nil {
		log.Logger.Panic("change log level", zap.Error(err), zap.String("level", lvl))
	}
}

// buildProvider resolves the credential and assembles the Exa-backed search
// provider shared by the server and check commands.
func buildProvider() (search.Provider, error) {
	apiKey, err := config.ExaAPIKey()
	if err != nil {
		return nil, errors.Wrap(err, "resolve exa api key")
	}

	var opts []exa.Option
	if endpoint := gconfig.Shared.GetString("settings.exa.endpoint"); endpoint != "" {
		opts = append(opts, exa.WithEndpoint(endpoint))
	}

	provider, err := search.NewExaProvider(exa.NewClient(apiKey, opts...))
	if err != nil {
		return nil, errors.Wrap(err, "create exa provider")
	}

	return provider, nil
}

func init() {
	rootCMD.PersistentFlags().Bool("debug", false, "run in debug mode")
	rootCMD.PersistentFlags().StringP("config", "c", "/etc/exa-search-mcp/settings.yml", "config file path")
	rootCMD.PersistentFlags().String("log-level", "info", "`debug/info/error`")
}

// Execute executes the root command.
func Execute() {
	if err := rootCMD.Execute(); err != nil {
		glog.Shared.Panic("start", zap.Error(err))
	}
}
