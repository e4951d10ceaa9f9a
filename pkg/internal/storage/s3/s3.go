// Package s3 wraps the MinIO client for object storage operations.
package s3

import (
	"context"
	"fmt"
	"net/url"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/drivevault/drivevault/pkg/configs"
	nlog "github.com/drivevault/drivevault/pkg/log"
)

// Client wraps the MinIO client.
type Client struct {
	*minio.Client
	bucket string
}

// New initializes the MinIO client and ensures the configured bucket exists.
func New(ctx context.Context) (*Client, error) {
	cfg := configs.GetConfig().S3
	endpoint := cfg.Endpoint
	// Accept endpoints with a full scheme (http:// or https://).
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("drivevault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.BucketName).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.BucketName).Msg("s3 connected")

	return &Client{Client: cli, bucket: cfg.BucketName}, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// RemoveOne deletes a single object. Failure must abort the caller's
// transaction: metadata is never deleted ahead of the stored bytes.
func (c *Client) RemoveOne(ctx context.Context, objectID string) error {
	if err := c.RemoveObject(ctx, c.bucket, objectID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectID, err)
	}

	return nil
}

// RemoveMany bulk-deletes objects, returning the first delete error.
func (c *Client) RemoveMany(ctx context.Context, objectIDs []string) error {
	if len(objectIDs) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(objectIDs))
	for _, id := range objectIDs {
		objectsCh <- minio.ObjectInfo{Key: id}
	}

	close(objectsCh)

	for e := range c.RemoveObjects(ctx, c.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if e.Err != nil {
			return fmt.Errorf("remove object %s: %w", e.ObjectName, e.Err)
		}
	}

	return nil
}

// HealthCheck verifies the connection by listing buckets.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Close is a no-op kept for interface symmetry.
func (c *Client) Close() error {
	return nil
}
