package cmd

import (
	"context"
	"fmt"

	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/exa-search-mcp/internal/diagnose"
	"github.com/Laisky/exa-search-mcp/library/log"
)

var checkCMD = &cobra.Command{
	Use:   "check",
	Short: "verify Exa API connectivity",
	Long:  `run connectivity probes against the live Exa API to validate the credential before serving`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if err := initialize(context.Background(), cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context())
	},
}

func runCheck(ctx context.Context) error {
	provider, err := buildProvider()
	if err != nil {
		return err
	}

	report, runErr := diagnose.Run(ctx, provider, log.Logger.Named("diagnose"))

	passed := 0
	for _, probe := range report.Probes {
		status := "PASS"
		detail := probe.Detail
		if probe.Err != nil {
			status = "FAIL"
			detail = probe.Err.Error()
			if !probe.Critical {
				status = "WARN"
			}
		} else {
			passed++
		}
		fmt.Printf("%-4s %-14s %s\n", status, probe.Name, detail)
	}
	fmt.Printf("%d/%d probes passed\n", passed, len(report.Probes))

	if runErr != nil {
		return runErr
	}

	fmt.Println("connectivity check passed, the server is ready to run")
	return nil
}

func init() {
	rootCMD.AddCommand(checkCMD)
}
