// Package cleanup discovers cloud resources tagged as test or automation
// artifacts and, outside of dry-run, stops or deletes them.
package cleanup

import (
	"context"

	"github.com/rzbill/opsweep/pkg/types"
)

// Provider is the cloud-provider collaborator consumed by the orchestrator.
// Tag filters are pushed down where the provider supports server-side
// filtering (instances, snapshots); bucket filtering is client-side.
type Provider interface {
	// ListInstances returns all instances matching the tag filters.
	ListInstances(ctx context.Context, tagFilters map[string]string) ([]types.Resource, error)

	// StopInstance stops a running instance. Termination is never offered.
	StopInstance(ctx context.Context, id string) error

	// ListSnapshots returns all owned snapshots matching the tag filters.
	ListSnapshots(ctx context.Context, tagFilters map[string]string) ([]types.Resource, error)

	// DeleteSnapshot deletes a snapshot.
	DeleteSnapshot(ctx context.Context, id string) error

	// ListBuckets returns every bucket with its tags.
	ListBuckets(ctx context.Context) ([]types.Resource, error)

	// ListObjects returns the keys of every object in a bucket.
	ListObjects(ctx context.Context, bucket string) ([]string, error)

	// DeleteObjects deletes the given object keys from a bucket.
	DeleteObjects(ctx context.Context, bucket string, keys []string) error

	// DeleteBucket deletes a bucket. The provider is expected to reject
	// this for a non-empty bucket.
	DeleteBucket(ctx context.Context, bucket string) error
}
