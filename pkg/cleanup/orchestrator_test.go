package cleanup

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzbill/opsweep/pkg/log"
	"github.com/rzbill/opsweep/pkg/retry"
	"github.com/rzbill/opsweep/pkg/types"
)

// fakeProvider serves canned listings and records every call in order.
type fakeProvider struct {
	instances []types.Resource
	snapshots []types.Resource
	buckets   []types.Resource
	objects   map[string][]string

	listErrs map[types.ResourceKind]error
	actErrs  map[string]error

	calls []string // every provider call, e.g. "StopInstance i-1"
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		objects:  map[string][]string{},
		listErrs: map[types.ResourceKind]error{},
		actErrs:  map[string]error{},
	}
}

func (p *fakeProvider) record(call string, args ...string) {
	for _, a := range args {
		call += " " + a
	}
	p.calls = append(p.calls, call)
}

// mutations returns only the calls that mutate provider state.
func (p *fakeProvider) mutations() []string {
	var out []string
	for _, c := range p.calls {
		switch {
		case len(c) >= 4 && c[:4] == "List":
		default:
			out = append(out, c)
		}
	}
	return out
}

func (p *fakeProvider) ListInstances(_ context.Context, _ map[string]string) ([]types.Resource, error) {
	p.record("ListInstances")
	return p.instances, p.listErrs[types.ResourceKindInstance]
}

func (p *fakeProvider) StopInstance(_ context.Context, id string) error {
	p.record("StopInstance", id)
	return p.actErrs[id]
}

func (p *fakeProvider) ListSnapshots(_ context.Context, _ map[string]string) ([]types.Resource, error) {
	p.record("ListSnapshots")
	return p.snapshots, p.listErrs[types.ResourceKindSnapshot]
}

func (p *fakeProvider) DeleteSnapshot(_ context.Context, id string) error {
	p.record("DeleteSnapshot", id)
	return p.actErrs[id]
}

func (p *fakeProvider) ListBuckets(_ context.Context) ([]types.Resource, error) {
	p.record("ListBuckets")
	return p.buckets, p.listErrs[types.ResourceKindBucket]
}

func (p *fakeProvider) ListObjects(_ context.Context, bucket string) ([]string, error) {
	p.record("ListObjects", bucket)
	if err := p.actErrs["list:"+bucket]; err != nil {
		return nil, err
	}
	return p.objects[bucket], nil
}

func (p *fakeProvider) DeleteObjects(_ context.Context, bucket string, keys []string) error {
	p.record("DeleteObjects", bucket, fmt.Sprintf("n=%d", len(keys)))
	return p.actErrs["empty:"+bucket]
}

func (p *fakeProvider) DeleteBucket(_ context.Context, bucket string) error {
	p.record("DeleteBucket", bucket)
	return p.actErrs[bucket]
}

func matchedInstance(id, status string) types.Resource {
	return types.Resource{
		ID:     id,
		Kind:   types.ResourceKindInstance,
		Status: status,
		Tags: map[string]string{
			TagEnvironment: EnvironmentTest,
			TagCreatedBy:   CreatedByInstances,
		},
	}
}

func matchedSnapshot(id string, clock retry.Clock) types.Resource {
	created := clock.Now().Add(-30 * 24 * time.Hour)
	return types.Resource{
		ID:      id,
		Kind:    types.ResourceKindSnapshot,
		Created: &created,
		Tags:    map[string]string{TagCreatedBy: CreatedBySnapshots},
	}
}

func matchedBucket(name string) types.Resource {
	return types.Resource{ID: name, Name: name, Kind: types.ResourceKindBucket}
}

func newTestOrchestrator(p Provider, clock retry.Clock) *Orchestrator {
	return NewOrchestrator(p, WithClock(clock), WithLogger(log.NewTestLogger()))
}

func TestDryRunIssuesNoMutationCalls(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.instances = []types.Resource{matchedInstance("i-1", "running")}
	p.snapshots = []types.Resource{matchedSnapshot("snap-1", clock)}
	p.buckets = []types.Resource{matchedBucket("test-data")}
	p.objects["test-data"] = []string{"a", "b"}

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.DryRun)

	require.Len(t, report.Results, 3)
	for _, r := range report.Results {
		assert.Equal(t, types.OutcomeSkipped, r.Outcome)
	}
	assert.Empty(t, p.mutations(), "dry-run must not mutate anything")
}

func TestDryRunEnumeratesExactlyTheMatches(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.instances = []types.Resource{
		matchedInstance("i-1", "running"),
		// Only one of the required tags: no match
		{ID: "i-2", Kind: types.ResourceKindInstance, Status: "running",
			Tags: map[string]string{TagEnvironment: EnvironmentTest}},
	}
	p.buckets = []types.Resource{
		matchedBucket("acme-test-artifacts"),
		matchedBucket("prod-data"),
	}

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.DryRun)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "i-1", report.Results[0].Target)
	assert.Equal(t, types.ActionStop, report.Results[0].Action)
	assert.Equal(t, "acme-test-artifacts", report.Results[1].Target)
	assert.Equal(t, types.ActionEmptyThenDelete, report.Results[1].Action)
	assert.Empty(t, p.mutations())
}

func TestCommitStopsOnlyRunningInstances(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.instances = []types.Resource{
		matchedInstance("i-1", "running"),
		matchedInstance("i-2", "stopped"),
	}

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	require.Len(t, report.Results, 2)
	assert.Equal(t, types.OutcomeSuccess, report.Results[0].Outcome)
	assert.Equal(t, types.OutcomeSkipped, report.Results[1].Outcome)
	assert.Equal(t, []string{"StopInstance i-1"}, p.mutations())
}

func TestCommitDeletesMatchedSnapshots(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.snapshots = []types.Resource{matchedSnapshot("snap-1", clock)}

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	require.Len(t, report.Results, 1)
	assert.Equal(t, types.OutcomeSuccess, report.Results[0].Outcome)
	assert.Equal(t, []string{"DeleteSnapshot snap-1"}, p.mutations())
}

func TestCommitEmptiesBucketBeforeDeletingIt(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.buckets = []types.Resource{matchedBucket("test-data")}
	p.objects["test-data"] = []string{"a", "b", "c"}

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	require.Len(t, report.Results, 1)
	assert.Equal(t, types.OutcomeSuccess, report.Results[0].Outcome)
	// One batched delete covering all three keys, then exactly one
	// DeleteBucket, in that order.
	assert.Equal(t, []string{
		"DeleteObjects test-data n=3",
		"DeleteBucket test-data",
	}, p.mutations())
}

func TestCommitSkipsEmptyBucketObjectDelete(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.buckets = []types.Resource{matchedBucket("test-data")}

	newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	assert.Equal(t, []string{"DeleteBucket test-data"}, p.mutations())
}

func TestBucketDeleteIsNotIssuedWhenEmptyingFails(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.buckets = []types.Resource{matchedBucket("test-data")}
	p.objects["test-data"] = []string{"a"}
	p.actErrs["empty:test-data"] = errors.New("access denied")

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	require.Len(t, report.Results, 1)
	assert.Equal(t, types.OutcomeFailed, report.Results[0].Outcome)
	assert.NotContains(t, p.calls, "DeleteBucket test-data")
}

func TestListFailureForOneKindDoesNotAbortTheOthers(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.listErrs[types.ResourceKindInstance] = errors.New("throttled")
	p.snapshots = []types.Resource{matchedSnapshot("snap-1", clock)}
	p.buckets = []types.Resource{matchedBucket("test-data")}

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	require.Len(t, report.Results, 3)
	assert.Equal(t, types.OutcomeFailed, report.Results[0].Outcome)
	assert.Contains(t, p.calls, "ListSnapshots")
	assert.Contains(t, p.calls, "ListBuckets")
	assert.Contains(t, p.mutations(), "DeleteSnapshot snap-1")
}

func TestTargetFailureDoesNotStopSiblingTargets(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()
	p.snapshots = []types.Resource{
		matchedSnapshot("snap-1", clock),
		matchedSnapshot("snap-2", clock),
	}
	p.actErrs["snap-1"] = errors.New("in use")

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	require.Len(t, report.Results, 2)
	assert.Equal(t, types.OutcomeFailed, report.Results[0].Outcome)
	assert.Equal(t, types.OutcomeSuccess, report.Results[1].Outcome)
	assert.Contains(t, p.mutations(), "DeleteSnapshot snap-2")
}

func TestKindsRunInFixedOrder(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()

	newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	assert.Equal(t, []string{"ListInstances", "ListSnapshots", "ListBuckets"}, p.calls)
}

func TestCommitOnEmptyMatchSetIsANoOp(t *testing.T) {
	clock := retry.NewFakeClock()
	p := newFakeProvider()

	report := newTestOrchestrator(p, clock).Run(context.Background(), types.Commit)

	assert.Empty(t, report.Results)
	assert.False(t, report.Failed())
	assert.Empty(t, p.mutations())
}
