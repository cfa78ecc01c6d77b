package cleanup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rzbill/opsweep/pkg/types"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func instance(tags map[string]string) types.Resource {
	return types.Resource{ID: "i-0abc", Kind: types.ResourceKindInstance, Tags: tags}
}

func snapshot(tags map[string]string, created time.Time) types.Resource {
	return types.Resource{ID: "snap-0abc", Kind: types.ResourceKindSnapshot, Tags: tags, Created: &created}
}

func bucket(name string, tags map[string]string) types.Resource {
	return types.Resource{ID: name, Name: name, Kind: types.ResourceKindBucket, Tags: tags}
}

func TestInstancePredicateIsAConjunction(t *testing.T) {
	policy := DefaultPolicy()

	assert.True(t, policy.Matches(instance(map[string]string{
		TagEnvironment: EnvironmentTest,
		TagCreatedBy:   CreatedByInstances,
	}), now))

	// One of the two required tags is not enough
	assert.False(t, policy.Matches(instance(map[string]string{
		TagEnvironment: EnvironmentTest,
	}), now))
	assert.False(t, policy.Matches(instance(map[string]string{
		TagCreatedBy: CreatedByInstances,
	}), now))

	// Values are exact-match
	assert.False(t, policy.Matches(instance(map[string]string{
		TagEnvironment: "Production",
		TagCreatedBy:   CreatedByInstances,
	}), now))

	assert.False(t, policy.Matches(instance(nil), now))
}

func TestSnapshotPredicateAgeBoundaryIsStrict(t *testing.T) {
	policy := DefaultPolicy()
	tags := map[string]string{TagCreatedBy: CreatedBySnapshots}

	// Exactly at the 7-day boundary: excluded
	assert.False(t, policy.Matches(snapshot(tags, now.Add(-DefaultSnapshotAge)), now))

	// One second older: included
	assert.True(t, policy.Matches(snapshot(tags, now.Add(-DefaultSnapshotAge-time.Second)), now))

	// Old enough but wrong tag
	assert.False(t, policy.Matches(snapshot(map[string]string{TagCreatedBy: "Console"},
		now.Add(-30*24*time.Hour)), now))

	// Tagged but too young
	assert.False(t, policy.Matches(snapshot(tags, now.Add(-24*time.Hour)), now))
}

func TestSnapshotPredicateRequiresStartTime(t *testing.T) {
	policy := DefaultPolicy()
	r := types.Resource{
		ID:   "snap-0abc",
		Kind: types.ResourceKindSnapshot,
		Tags: map[string]string{TagCreatedBy: CreatedBySnapshots},
	}
	assert.False(t, policy.Matches(r, now))
}

func TestBucketPredicateIsADisjunction(t *testing.T) {
	policy := DefaultPolicy()

	// Name shapes
	assert.True(t, policy.Matches(bucket("test-data", nil), now))
	assert.True(t, policy.Matches(bucket("acme-test-artifacts", nil), now))
	assert.False(t, policy.Matches(bucket("prod-data", nil), now))

	// A production-named bucket with the Test tag still matches
	assert.True(t, policy.Matches(bucket("prod-data", map[string]string{
		TagEnvironment: EnvironmentTest,
	}), now))

	assert.False(t, policy.Matches(bucket("prod-data", map[string]string{
		TagEnvironment: "Production",
	}), now))
}

func TestActionTableHasNoTerminate(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, types.ActionStop, policy.ActionFor(types.ResourceKindInstance))
	assert.Equal(t, types.ActionDelete, policy.ActionFor(types.ResourceKindSnapshot))
	assert.Equal(t, types.ActionEmptyThenDelete, policy.ActionFor(types.ResourceKindBucket))
}
