package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
)

// S3Config holds configuration for S3 or an S3-compatible endpoint
type S3Config struct {
	Region    string
	Endpoint  string // Custom endpoint (e.g., localstack:4566); empty for AWS
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// S3Storage implements ObjectStorage using AWS S3
type S3Storage struct {
	client *s3.Client
	config S3Config
}

// NewS3Storage creates a new S3 storage implementation
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		// LocalStack / MinIO style endpoint with static credentials
		awsCfg, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		)
	} else {
		// Standard AWS configuration (Lambda role, env, shared profile)
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3StorageFromConfig(awsCfg, cfg), nil
}

// NewS3StorageFromConfig builds the storage from an already loaded AWS config
func NewS3StorageFromConfig(awsCfg aws.Config, cfg S3Config) *S3Storage {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(normalizeEndpoint(cfg.Endpoint, cfg.UseSSL))
			o.UsePathStyle = true
			// S3-compatible servers do not all accept flexible checksums
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		}
	})

	return &S3Storage{
		client: client,
		config: cfg,
	}
}

// ListPage lists a single page of objects under prefix using ListObjectsV2
func (s *S3Storage) ListPage(ctx context.Context, bucket, prefix, token string, maxKeys int32) (domain.ListPage, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(maxKeys),
	}
	if token != "" {
		input.ContinuationToken = aws.String(token)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return domain.ListPage{}, fmt.Errorf("list objects in %s: %w: %w", bucket, domain.ErrTransportUnavailable, err)
	}

	page := domain.ListPage{Objects: make([]domain.ObjectRef, 0, len(out.Contents))}
	for _, c := range out.Contents {
		page.Objects = append(page.Objects, domain.ObjectRef{
			Key:          aws.ToString(c.Key),
			Size:         aws.ToInt64(c.Size),
			LastModified: aws.ToTime(c.LastModified),
		})
	}
	if aws.ToBool(out.IsTruncated) {
		page.ContinuationToken = aws.ToString(out.NextContinuationToken)
	}

	return page, nil
}

// HeadObject fetches object metadata
func (s *S3Storage) HeadObject(ctx context.Context, bucket, key string) (domain.ObjectHead, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return domain.ObjectHead{}, classify(fmt.Sprintf("head %s/%s", bucket, key), err)
	}

	return domain.ObjectHead{
		Key:          key,
		ContentType:  aws.ToString(out.ContentType),
		Size:         aws.ToInt64(out.ContentLength),
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

// GetObject downloads the whole object into memory
func (s *S3Storage) GetObject(ctx context.Context, bucket, key string) (domain.Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return domain.Object{}, classify(fmt.Sprintf("get %s/%s", bucket, key), err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return domain.Object{}, fmt.Errorf("read %s/%s: %w: %w", bucket, key, domain.ErrTransportUnavailable, err)
	}

	return domain.Object{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Body:        body,
	}, nil
}

// PutObject uploads body to S3
func (s *S3Storage) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	// The signer needs a seekable body when the endpoint is plain HTTP
	seekable, ok := body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("failed to buffer upload body: %w", err)
		}
		seekable = bytes.NewReader(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        seekable,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to s3: %w: %w", domain.ErrTransportUnavailable, err)
	}
	return nil
}

// classify maps SDK not-found errors onto domain.ErrObjectNotFound and
// everything else onto domain.ErrTransportUnavailable
func classify(op string, err error) error {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return fmt.Errorf("%s: %w", op, domain.ErrObjectNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrTransportUnavailable, err)
}

// normalizeEndpoint adds an http:// scheme to bare host:port endpoints
func normalizeEndpoint(endpoint string, useSSL bool) string {
	if hasHTTPPrefix(endpoint) {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

// hasHTTPPrefix checks if a string has http:// or https:// prefix
func hasHTTPPrefix(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
