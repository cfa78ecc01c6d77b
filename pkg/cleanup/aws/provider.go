// Package aws implements the cleanup Provider on top of the AWS SDK.
package aws

import (
	"context"
	"fmt"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rzbill/opsweep/pkg/log"
)

// DefaultProfile is the shared-config profile automation runs under,
// matching the credential profile the provisioning tooling uses.
const DefaultProfile = "automation"

// DefaultRegion is the region cleanup runs against.
const DefaultRegion = "us-east-1"

// Options configures the AWS provider.
type Options struct {
	// Profile selects the shared-config credential profile
	Profile string

	// Region overrides the profile's region
	Region string

	// Logger overrides the default logger
	Logger log.Logger
}

// DefaultOptions returns the stock provider options.
func DefaultOptions() Options {
	return Options{
		Profile: DefaultProfile,
		Region:  DefaultRegion,
	}
}

// Provider talks to EC2 and S3. It satisfies cleanup.Provider.
type Provider struct {
	ec2    *ec2.Client
	s3     *s3.Client
	logger log.Logger
}

// NewProvider resolves the credential profile and builds the service
// clients. A failure here means no cleanup work can happen at all.
func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(opts.Region))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for profile %q: %w", opts.Profile, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.GetDefaultLogger().WithComponent("aws")
	}

	return &Provider{
		ec2:    ec2.NewFromConfig(cfg),
		s3:     s3.NewFromConfig(cfg),
		logger: logger,
	}, nil
}
