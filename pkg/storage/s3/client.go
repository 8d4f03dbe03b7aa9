package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/duracem/nameplate-backend/pkg/config"
	"github.com/duracem/nameplate-backend/pkg/logger"
)

type objectAPI interface {
	PutObject(context.Context, *awss3.PutObjectInput, ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	HeadBucket(context.Context, *awss3.HeadBucketInput, ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
}

// Client wraps the S3-compatible object store used for nameplate images.
// It works against AWS S3 as well as MinIO via the endpoint override.
type Client struct {
	api       objectAPI
	bucket    string
	publicURL string
}

// Uploader is the surface consumed by the upload service.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New builds a client from static credentials and verifies bucket access.
func New(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*Client, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load object storage config: %w", err)
	}

	api := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	client := &Client{
		api:       api,
		bucket:    cfg.Bucket,
		publicURL: publicBase(cfg),
	}

	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("object storage bucket check: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "object storage connection established")
	}
	return client, nil
}

func publicBase(cfg config.StorageConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return endpoint + "/" + cfg.Bucket
}

// Put stores the object and returns its publicly resolvable URL.
func (c *Client) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	if c.api == nil {
		return "", fmt.Errorf("object storage client not initialized")
	}
	input := &awss3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := c.api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return c.URLFor(key), nil
}

// URLFor composes the public URL for a stored key.
func (c *Client) URLFor(key string) string {
	return c.publicURL + "/" + strings.TrimLeft(key, "/")
}

// Ping verifies the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c.api == nil {
		return fmt.Errorf("object storage client not initialized")
	}
	_, err := c.api.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	return err
}
