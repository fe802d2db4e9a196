package main

import (
	"context"
	"fmt"
	"path"

	"dagger/augmem/internal/dagger"
)

// bucketTarget carries the credentials for the S3-compatible artifacts
// bucket. Secrets only; nothing here is safe to log.
type bucketTarget struct {
	endpoint        *dagger.Secret
	bucket          *dagger.Secret
	accessKeyId     *dagger.Secret
	secretAccessKey *dagger.Secret
}

func newBucketTarget(endpoint, bucket, accessKeyId, secretAccessKey *dagger.Secret) *bucketTarget {
	return &bucketTarget{
		endpoint:        endpoint,
		bucket:          bucket,
		accessKeyId:     accessKeyId,
		secretAccessKey: secretAccessKey,
	}
}

// upload syncs artifacts into the bucket under the given path prefix.
func (b *bucketTarget) upload(ctx context.Context, artifacts *dagger.Directory, prefix string) error {
	bucketName, err := b.bucket.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("reading bucket name secret: %w", err)
	}

	endpointUrl, err := b.endpoint.Plaintext(ctx)
	if err != nil {
		return fmt.Errorf("reading endpoint secret: %w", err)
	}

	// amazon/aws-cli speaks to any S3-compatible endpoint
	_, err = dag.Container().
		From("amazon/aws-cli:latest").
		WithSecretVariable("AWS_ACCESS_KEY_ID", b.accessKeyId).
		WithSecretVariable("AWS_SECRET_ACCESS_KEY", b.secretAccessKey).
		WithEnvVariable("AWS_DEFAULT_REGION", "auto").
		WithDirectory("/artifacts", artifacts).
		WithWorkdir("/artifacts").
		WithExec([]string{
			"aws", "s3", "sync", ".",
			fmt.Sprintf("s3://%s", path.Join(bucketName, prefix)),
			"--endpoint-url", endpointUrl,
		}).
		Sync(ctx)
	if err != nil {
		return fmt.Errorf("uploading artifacts: %w", err)
	}

	return nil
}

// ReleaseLatest builds release binaries and uploads them twice: under the
// version prefix and under latest
func (a *Augmem) ReleaseLatest(
	ctx context.Context,

	// Release version tag (e.g., "v1.0.0")
	version string,

	// Commit SHA the release is cut from
	commit string,

	// S3-compatible endpoint of the artifacts bucket
	endpoint *dagger.Secret,

	// Artifacts bucket name
	bucket *dagger.Secret,

	// Access key id for the bucket
	accessKeyId *dagger.Secret,

	// Secret access key for the bucket
	secretAccessKey *dagger.Secret,
) (*dagger.Directory, error) {
	target := newBucketTarget(endpoint, bucket, accessKeyId, secretAccessKey)

	artifacts := a.BuildRelease(ctx, version, commit)
	for _, prefix := range []string{version, "latest"} {
		if err := target.upload(ctx, artifacts, prefix); err != nil {
			return artifacts, fmt.Errorf("could not upload %s release artifacts: %w", prefix, err)
		}
	}

	return artifacts, nil
}

// Nightly builds untagged binaries from the given commit and uploads them
// under the nightly prefix
func (a *Augmem) Nightly(
	ctx context.Context,

	// Commit SHA the nightly is built from
	commit string,

	// S3-compatible endpoint of the artifacts bucket
	endpoint *dagger.Secret,

	// Artifacts bucket name
	bucket *dagger.Secret,

	// Access key id for the bucket
	accessKeyId *dagger.Secret,

	// Secret access key for the bucket
	secretAccessKey *dagger.Secret,
) (*dagger.Directory, error) {
	target := newBucketTarget(endpoint, bucket, accessKeyId, secretAccessKey)

	artifacts := a.BuildRelease(ctx, "nightly", commit)
	return artifacts, target.upload(ctx, artifacts, "nightly")
}
