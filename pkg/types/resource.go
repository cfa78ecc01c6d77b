package types

import "time"

// ResourceKind identifies one of the cloud resource kinds the cleanup
// pipeline knows how to discover and act on.
type ResourceKind string

const (
	// ResourceKindInstance is a compute instance.
	ResourceKindInstance ResourceKind = "Instance"

	// ResourceKindSnapshot is a storage snapshot.
	ResourceKindSnapshot ResourceKind = "Snapshot"

	// ResourceKindBucket is an object-storage bucket.
	ResourceKindBucket ResourceKind = "Bucket"
)

// KindOrder is the fixed processing order for cleanup runs.
var KindOrder = []ResourceKind{
	ResourceKindInstance,
	ResourceKindSnapshot,
	ResourceKindBucket,
}

// Resource is one discovered cloud resource. A single shape covers all
// kinds; Status is only meaningful for instances and Created is absent on
// resources whose provider does not report it.
type Resource struct {
	// Unique identifier for the resource (instance ID, snapshot ID, bucket name)
	ID string `json:"id" yaml:"id"`

	// Human-readable name, when distinct from the ID
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Kind of the resource
	Kind ResourceKind `json:"kind" yaml:"kind"`

	// Tags attached to the resource
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Creation or start timestamp
	Created *time.Time `json:"created,omitempty" yaml:"created,omitempty"`

	// Runtime status as reported by the provider (instances only)
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// Tag returns the value of a tag and whether it is present.
func (r Resource) Tag(key string) (string, bool) {
	v, ok := r.Tags[key]
	return v, ok
}

// Action is the mutation a cleanup run would apply to a matched resource.
type Action string

const (
	// ActionNone means no mutation applies.
	ActionNone Action = "None"

	// ActionStop stops a running instance. Instances are never terminated.
	ActionStop Action = "Stop"

	// ActionDelete deletes a snapshot.
	ActionDelete Action = "Delete"

	// ActionEmptyThenDelete empties a bucket and then deletes it.
	ActionEmptyThenDelete Action = "EmptyThenDelete"
)

// RunMode selects between reporting matches and acting on them. It is set
// once per run and passed by value to every action decision.
type RunMode string

const (
	// DryRun reports matches without issuing any provider mutation.
	DryRun RunMode = "dry-run"

	// Commit performs the destructive action for every match.
	Commit RunMode = "commit"
)

// String returns the string representation of the run mode.
func (m RunMode) String() string {
	return string(m)
}
