package cleanup

import (
	"context"
	"fmt"

	"github.com/rzbill/opsweep/pkg/log"
	"github.com/rzbill/opsweep/pkg/retry"
	"github.com/rzbill/opsweep/pkg/types"
)

// instanceStatusRunning is the provider's status string for a running
// instance; only running instances receive a stop call.
const instanceStatusRunning = "running"

// Orchestrator runs the enumerate -> filter -> (report | act) pass over
// every resource kind, in the fixed order instances -> snapshots -> buckets.
type Orchestrator struct {
	provider Provider
	policy   Policy
	clock    retry.Clock
	logger   log.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithPolicy overrides the default cleanup policy.
func WithPolicy(policy Policy) OrchestratorOption {
	return func(o *Orchestrator) {
		o.policy = policy
	}
}

// WithClock overrides the wall clock, used by tests.
func WithClock(clock retry.Clock) OrchestratorOption {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

// WithLogger overrides the logger.
func WithLogger(logger log.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an Orchestrator over the given provider.
func NewOrchestrator(provider Provider, options ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		policy:   DefaultPolicy(),
		clock:    retry.RealClock{},
		logger:   log.GetDefaultLogger().WithComponent("cleanup"),
	}

	for _, option := range options {
		option(o)
	}

	return o
}

// Run performs one full cleanup pass. A listing failure for one kind does
// not abort the other kinds, and a failure on one target does not prevent
// subsequent targets of the same kind from being attempted. In dry-run
// mode no provider mutation call is issued for any kind.
func (o *Orchestrator) Run(ctx context.Context, mode types.RunMode) *types.Report {
	report := types.NewReport(mode)
	o.logger.Info("starting cleanup run", log.Str("mode", mode.String()))

	for _, kind := range types.KindOrder {
		resources, err := o.discover(ctx, kind)
		if err != nil {
			o.logger.Error("listing failed", log.Str("kind", string(kind)), log.Err(err))
			report.Add(types.TargetResult{
				Target:  string(kind),
				Kind:    kind,
				Outcome: types.OutcomeFailed,
				Err:     fmt.Errorf("list %ss: %w", kind, err),
			})
			continue
		}

		now := o.clock.Now()
		for _, r := range resources {
			if !o.policy.Matches(r, now) {
				continue
			}
			report.Add(o.act(ctx, r, mode))
		}
	}

	o.logger.Info("cleanup run finished",
		log.Int("matched", len(report.Results)),
		log.Int("failed", report.Count(types.OutcomeFailed)))
	return report
}

// discover lists all resources of one kind. Tag filters are pushed down to
// the provider where it supports them; the policy predicate still decides
// every match client-side.
func (o *Orchestrator) discover(ctx context.Context, kind types.ResourceKind) ([]types.Resource, error) {
	switch kind {
	case types.ResourceKindInstance:
		return o.provider.ListInstances(ctx, o.policy.InstanceTags)
	case types.ResourceKindSnapshot:
		return o.provider.ListSnapshots(ctx, o.policy.SnapshotTags)
	case types.ResourceKindBucket:
		return o.provider.ListBuckets(ctx)
	default:
		return nil, fmt.Errorf("unknown resource kind %q", kind)
	}
}

// act applies the kind's action to a matched resource, or only reports it
// in dry-run mode.
func (o *Orchestrator) act(ctx context.Context, r types.Resource, mode types.RunMode) types.TargetResult {
	result := types.TargetResult{
		Target: r.ID,
		Kind:   r.Kind,
		Name:   r.Name,
		Action: o.policy.ActionFor(r.Kind),
	}
	logger := o.logger.With(log.Str("kind", string(r.Kind)), log.Str("id", r.ID))

	if mode == types.DryRun {
		logger.Info("matched (dry-run)", log.Str("action", string(result.Action)))
		result.Outcome = types.OutcomeSkipped
		result.Detail = "dry-run"
		return result
	}

	var err error
	switch r.Kind {
	case types.ResourceKindInstance:
		if r.Status != instanceStatusRunning {
			logger.Info("instance matched but not running, skipped", log.Str("status", r.Status))
			result.Outcome = types.OutcomeSkipped
			result.Detail = r.Status
			return result
		}
		logger.Info("stopping instance")
		err = o.provider.StopInstance(ctx, r.ID)
	case types.ResourceKindSnapshot:
		logger.Info("deleting snapshot")
		err = o.provider.DeleteSnapshot(ctx, r.ID)
	case types.ResourceKindBucket:
		err = o.deleteBucket(ctx, r.Name, logger)
	}

	if err != nil {
		logger.Error("action failed", log.Err(err))
		result.Outcome = types.OutcomeFailed
		result.Err = err
		return result
	}

	result.Outcome = types.OutcomeSuccess
	return result
}

// deleteBucket empties a bucket and then deletes it. Emptying must complete
// before the bucket delete is issued; a failure while emptying leaves the
// bucket in place.
func (o *Orchestrator) deleteBucket(ctx context.Context, bucket string, logger log.Logger) error {
	keys, err := o.provider.ListObjects(ctx, bucket)
	if err != nil {
		return fmt.Errorf("list objects in %s: %w", bucket, err)
	}

	if len(keys) > 0 {
		logger.Info("emptying bucket", log.Int("objects", len(keys)))
		if err := o.provider.DeleteObjects(ctx, bucket, keys); err != nil {
			return fmt.Errorf("empty bucket %s: %w", bucket, err)
		}
	}

	logger.Info("deleting bucket")
	if err := o.provider.DeleteBucket(ctx, bucket); err != nil {
		return fmt.Errorf("delete bucket %s: %w", bucket, err)
	}
	return nil
}
