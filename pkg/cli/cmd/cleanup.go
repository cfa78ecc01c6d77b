package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rzbill/opsweep/pkg/cleanup"
	awsprovider "github.com/rzbill/opsweep/pkg/cleanup/aws"
	"github.com/rzbill/opsweep/pkg/cli/format"
	"github.com/rzbill/opsweep/pkg/types"
)

var (
	cleanupProfile string
	cleanupRegion  string
	cleanupDryRun  bool
	cleanupOutput  string
)

// cleanupCmd discovers and optionally removes tagged test resources.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Stop or delete cloud resources tagged as test artifacts",
	Long: `Cleanup lists compute instances, storage snapshots, and object-storage
buckets, matches them against the test-artifact policy, and either
reports the matches (--dry-run) or acts on them: matched running
instances are stopped (never terminated), matched snapshots older
than the age threshold are deleted, and matched buckets are emptied
and then deleted.

Run with --dry-run first to review what a commit run would touch.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().StringVar(&cleanupProfile, "profile", awsprovider.DefaultProfile,
		"credential profile to run under")
	cleanupCmd.Flags().StringVar(&cleanupRegion, "region", awsprovider.DefaultRegion,
		"region to clean up")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false,
		"report matches without stopping or deleting anything")
	cleanupCmd.Flags().StringVar(&cleanupOutput, "output", "table",
		"output format (table, yaml)")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	profile := cleanupProfile
	if !cmd.Flags().Changed("profile") && cfg.Cleanup.Profile != "" {
		profile = cfg.Cleanup.Profile
	}
	region := cleanupRegion
	if !cmd.Flags().Changed("region") && cfg.Cleanup.Region != "" {
		region = cfg.Cleanup.Region
	}
	dryRun := cleanupDryRun
	if !cmd.Flags().Changed("dry-run") {
		dryRun = cfg.Cleanup.DryRun
	}

	// A provider that cannot be built is fatal; nothing has run yet.
	provider, err := awsprovider.NewProvider(ctx, awsprovider.Options{
		Profile: profile,
		Region:  region,
	})
	if err != nil {
		return fmt.Errorf("failed to establish provider context: %w", err)
	}

	policy := cleanup.DefaultPolicy()
	policy.SnapshotMaxAge = cfg.Cleanup.SnapshotMaxAge()

	mode := types.Commit
	if dryRun {
		mode = types.DryRun
	}

	orchestrator := cleanup.NewOrchestrator(provider, cleanup.WithPolicy(policy))
	report := orchestrator.Run(ctx, mode)

	if cleanupOutput == "yaml" {
		out, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Print(string(out))
		return nil
	}

	if mode == types.DryRun {
		fmt.Println(format.Header("Dry run: no resources were modified"))
	}
	if err := renderReport(report); err != nil {
		return err
	}

	fmt.Printf("\n%d matched, %d acted on, %d skipped, %d failed\n",
		len(report.Results),
		report.Count(types.OutcomeSuccess),
		report.Count(types.OutcomeSkipped),
		report.Count(types.OutcomeFailed))

	// Per-target failures are already reported; only a missing provider
	// context exits non-zero.
	return nil
}
