package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/rzbill/opsweep/pkg/log"
	"github.com/rzbill/opsweep/pkg/types"
)

// deleteBatchSize is the S3 DeleteObjects limit per request.
const deleteBatchSize = 1000

// ListBuckets returns every bucket with its tags. S3 has no server-side
// tag filtering for listings, so filtering happens in the orchestrator.
func (p *Provider) ListBuckets(ctx context.Context) ([]types.Resource, error) {
	out, err := p.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}

	resources := make([]types.Resource, 0, len(out.Buckets))
	for _, bucket := range out.Buckets {
		name := aws.ToString(bucket.Name)
		resources = append(resources, types.Resource{
			ID:      name,
			Name:    name,
			Kind:    types.ResourceKindBucket,
			Tags:    p.bucketTags(ctx, name),
			Created: bucket.CreationDate,
		})
	}

	return resources, nil
}

// bucketTags fetches a bucket's tag set. An untagged bucket is not an
// error, and a failed tag fetch only disqualifies the tag half of the
// bucket predicate, so both collapse to an empty map.
func (p *Provider) bucketTags(ctx context.Context, name string) map[string]string {
	out, err := p.s3.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		var apiErr smithy.APIError
		if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "NoSuchTagSet" {
			p.logger.Warn("failed to fetch bucket tags",
				log.Str("bucket", name), log.Err(err))
		}
		return nil
	}

	tags := make(map[string]string, len(out.TagSet))
	for _, tag := range out.TagSet {
		tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return tags
}

// ListObjects returns the key of every object in the bucket.
func (p *Provider) ListObjects(ctx context.Context, bucket string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(p.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects in %s: %w", bucket, err)
		}
		for _, object := range page.Contents {
			keys = append(keys, aws.ToString(object.Key))
		}
	}

	return keys, nil
}

// DeleteObjects deletes the given keys, batched at the provider's request
// size limit.
func (p *Provider) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}

		identifiers := make([]s3types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			identifiers = append(identifiers, s3types.ObjectIdentifier{
				Key: aws.String(key),
			})
		}

		_, err := p.s3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3types.Delete{
				Objects: identifiers,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("delete %d objects from %s: %w", end-start, bucket, err)
		}
	}

	return nil
}

// DeleteBucket deletes the bucket. S3 rejects this for a non-empty bucket,
// which backstops the empty-before-delete ordering.
func (p *Provider) DeleteBucket(ctx context.Context, bucket string) error {
	_, err := p.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return fmt.Errorf("delete bucket %s: %w", bucket, err)
	}
	return nil
}
