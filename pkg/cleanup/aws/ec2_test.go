package aws

import (
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"

	"github.com/rzbill/opsweep/pkg/types"
)

func TestTagFiltersToEC2(t *testing.T) {
	filters := tagFiltersToEC2(map[string]string{"Environment": "Test"})

	assert.Len(t, filters, 1)
	assert.Equal(t, "tag:Environment", sdkaws.ToString(filters[0].Name))
	assert.Equal(t, []string{"Test"}, filters[0].Values)
}

func TestInstanceResource(t *testing.T) {
	launched := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	instance := ec2types.Instance{
		InstanceId: sdkaws.String("i-0abc123"),
		LaunchTime: &launched,
		State:      &ec2types.InstanceState{Name: ec2types.InstanceStateNameRunning},
		Tags: []ec2types.Tag{
			{Key: sdkaws.String("Name"), Value: sdkaws.String("Windows-Test-Server")},
			{Key: sdkaws.String("Environment"), Value: sdkaws.String("Test")},
		},
	}

	r := instanceResource(instance)

	assert.Equal(t, "i-0abc123", r.ID)
	assert.Equal(t, "Windows-Test-Server", r.Name)
	assert.Equal(t, types.ResourceKindInstance, r.Kind)
	assert.Equal(t, "running", r.Status)
	assert.Equal(t, "Test", r.Tags["Environment"])
	assert.Equal(t, &launched, r.Created)
}
