package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzbill/opsweep/pkg/cli/format"
	"github.com/rzbill/opsweep/pkg/retry"
	"github.com/rzbill/opsweep/pkg/service"
	"github.com/rzbill/opsweep/pkg/types"
)

var restartServices []string

// restartCmd restarts the configured services one by one.
var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the configured services with bounded waits",
	Long: `Restart stops each configured service (when running), polls until it
has stopped or the poll ceiling is reached, starts it, waits a fixed
settle delay, and reports its final state. A service that fails is
reported and the rest of the list is still processed.`,
	RunE: runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)

	restartCmd.Flags().StringArrayVar(&restartServices, "service", nil,
		"service to restart (repeatable; overrides the configured list)")
}

func runRestart(cmd *cobra.Command, args []string) error {
	services := cfg.Restart.Services
	if len(restartServices) > 0 {
		services = restartServices
	}

	restarter := service.NewRestarter(service.NewSystemdController(),
		service.WithStopPolicy(retry.Policy{
			Interval:    cfg.Restart.StopPollInterval(),
			MaxAttempts: cfg.Restart.StopPollMax,
		}),
		service.WithSettle(cfg.Restart.Settle()),
	)

	report := restarter.RestartAll(context.Background(), services)

	for _, result := range report.Results {
		symbol := format.StatusSymbol(result.Outcome == types.OutcomeSuccess)
		line := fmt.Sprintf("%s %s: %s", symbol,
			format.Highlight(result.Target), format.StateLabel(result.Detail))
		if result.Err != nil {
			line = fmt.Sprintf("%s %s: %s", symbol,
				format.Highlight(result.Target), format.Error("%s", result.Error()))
		}
		fmt.Println(line)
	}

	fmt.Printf("\n%d restarted, %d warnings, %d failed\n",
		report.Count(types.OutcomeSuccess),
		report.Count(types.OutcomeWarning),
		report.Count(types.OutcomeFailed))

	// Individual outcomes never fail the batch
	return nil
}
