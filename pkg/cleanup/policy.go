package cleanup

import (
	"path"
	"time"

	"github.com/rzbill/opsweep/pkg/types"
)

// Tag vocabulary stamped onto automation-created resources.
const (
	TagEnvironment = "Environment"
	TagCreatedBy   = "CreatedBy"

	EnvironmentTest    = "Test"
	CreatedByInstances = "Python-Automation"
	CreatedBySnapshots = "Automation"

	// DefaultSnapshotAge is the fixed age threshold for snapshot cleanup.
	DefaultSnapshotAge = 7 * 24 * time.Hour
)

// Policy holds the per-kind filter predicates for one cleanup run.
type Policy struct {
	// InstanceTags must all be present and equal for an instance to match
	InstanceTags map[string]string `yaml:"instance_tags"`

	// SnapshotTags must all be present and equal for a snapshot to match
	SnapshotTags map[string]string `yaml:"snapshot_tags"`

	// SnapshotMaxAge excludes snapshots newer than now minus this age.
	// The boundary is strict: a snapshot exactly this old does not match.
	SnapshotMaxAge time.Duration `yaml:"snapshot_max_age"`

	// BucketPatterns are name globs; any match qualifies the bucket
	BucketPatterns []string `yaml:"bucket_patterns"`

	// BucketTags qualify a bucket independently of its name
	BucketTags map[string]string `yaml:"bucket_tags"`
}

// DefaultPolicy returns the stock test-artifact policy.
func DefaultPolicy() Policy {
	return Policy{
		InstanceTags: map[string]string{
			TagEnvironment: EnvironmentTest,
			TagCreatedBy:   CreatedByInstances,
		},
		SnapshotTags: map[string]string{
			TagCreatedBy: CreatedBySnapshots,
		},
		SnapshotMaxAge: DefaultSnapshotAge,
		BucketPatterns: []string{"test-*", "*-test-*"},
		BucketTags: map[string]string{
			TagEnvironment: EnvironmentTest,
		},
	}
}

// Matches applies the kind-specific predicate for the resource.
func (p Policy) Matches(r types.Resource, now time.Time) bool {
	switch r.Kind {
	case types.ResourceKindInstance:
		return hasAllTags(r, p.InstanceTags)
	case types.ResourceKindSnapshot:
		if !hasAllTags(r, p.SnapshotTags) {
			return false
		}
		if r.Created == nil {
			return false
		}
		return r.Created.Before(now.Add(-p.SnapshotMaxAge))
	case types.ResourceKindBucket:
		for _, pattern := range p.BucketPatterns {
			if ok, _ := path.Match(pattern, r.Name); ok {
				return true
			}
		}
		return hasAllTags(r, p.BucketTags)
	default:
		return false
	}
}

// ActionFor returns the mutation a match of this kind receives.
func (p Policy) ActionFor(kind types.ResourceKind) types.Action {
	switch kind {
	case types.ResourceKindInstance:
		return types.ActionStop
	case types.ResourceKindSnapshot:
		return types.ActionDelete
	case types.ResourceKindBucket:
		return types.ActionEmptyThenDelete
	default:
		return types.ActionNone
	}
}

// hasAllTags reports whether every required tag is present with an exactly
// equal value.
func hasAllTags(r types.Resource, required map[string]string) bool {
	if len(required) == 0 {
		return false
	}
	for k, want := range required {
		got, ok := r.Tag(k)
		if !ok || got != want {
			return false
		}
	}
	return true
}
