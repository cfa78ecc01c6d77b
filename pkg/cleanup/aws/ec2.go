package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/rzbill/opsweep/pkg/types"
)

// ListInstances returns all non-terminated instances matching the tag
// filters, pushed down server-side.
func (p *Provider) ListInstances(ctx context.Context, tagFilters map[string]string) ([]types.Resource, error) {
	filters := tagFiltersToEC2(tagFilters)
	filters = append(filters, ec2types.Filter{
		Name: aws.String("instance-state-name"),
		Values: []string{
			string(ec2types.InstanceStateNamePending),
			string(ec2types.InstanceStateNameRunning),
			string(ec2types.InstanceStateNameShuttingDown),
			string(ec2types.InstanceStateNameStopping),
			string(ec2types.InstanceStateNameStopped),
		},
	})

	var resources []types.Resource
	paginator := ec2.NewDescribeInstancesPaginator(p.ec2, &ec2.DescribeInstancesInput{
		Filters: filters,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				resources = append(resources, instanceResource(instance))
			}
		}
	}

	return resources, nil
}

// StopInstance stops a running instance. Instances are stopped, never
// terminated.
func (p *Provider) StopInstance(ctx context.Context, id string) error {
	_, err := p.ec2.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{id},
	})
	if err != nil {
		return fmt.Errorf("stop instance %s: %w", id, err)
	}
	return nil
}

// ListSnapshots returns all owned snapshots matching the tag filters,
// pushed down server-side.
func (p *Provider) ListSnapshots(ctx context.Context, tagFilters map[string]string) ([]types.Resource, error) {
	var resources []types.Resource
	paginator := ec2.NewDescribeSnapshotsPaginator(p.ec2, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
		Filters:  tagFiltersToEC2(tagFilters),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe snapshots: %w", err)
		}
		for _, snapshot := range page.Snapshots {
			resources = append(resources, types.Resource{
				ID:      aws.ToString(snapshot.SnapshotId),
				Kind:    types.ResourceKindSnapshot,
				Tags:    tagMap(snapshot.Tags),
				Created: snapshot.StartTime,
			})
		}
	}

	return resources, nil
}

// DeleteSnapshot deletes a snapshot.
func (p *Provider) DeleteSnapshot(ctx context.Context, id string) error {
	_, err := p.ec2.DeleteSnapshot(ctx, &ec2.DeleteSnapshotInput{
		SnapshotId: aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	return nil
}

func instanceResource(instance ec2types.Instance) types.Resource {
	tags := tagMap(instance.Tags)
	return types.Resource{
		ID:      aws.ToString(instance.InstanceId),
		Name:    tags["Name"],
		Kind:    types.ResourceKindInstance,
		Tags:    tags,
		Created: instance.LaunchTime,
		Status:  string(instance.State.Name),
	}
}

// tagFiltersToEC2 converts a tag map to server-side "tag:" filters.
func tagFiltersToEC2(tagFilters map[string]string) []ec2types.Filter {
	filters := make([]ec2types.Filter, 0, len(tagFilters))
	for k, v := range tagFilters {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:" + k),
			Values: []string{v},
		})
	}
	return filters
}

func tagMap(tags []ec2types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return m
}
