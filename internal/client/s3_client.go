package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client uploads media to the S3-compatible CDN bucket. Bytes are proxied
// straight through; nothing is stored locally.
type S3Client struct {
	s3Client      *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Client creates a new S3Client. Credentials and endpoint come from the
// environment and shared AWS config.
func NewS3Client(ctx context.Context, bucket string, publicBaseURL string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &S3Client{
		s3Client:      s3.NewFromConfig(cfg),
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// UploadFile streams data into the bucket under key.
func (c *S3Client) UploadFile(ctx context.Context, key string, data io.Reader, contentType string) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// PublicURL returns the CDN URL an uploaded key is served from.
func (c *S3Client) PublicURL(key string) string {
	return c.publicBaseURL + "/" + key
}
