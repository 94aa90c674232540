package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
)

// MinIOConfig holds MinIO connection settings.
type MinIOConfig struct {
	Endpoint  string // e.g., "localhost:9000"
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// MinIOStorage implements ObjectStorage using minio-go.
type MinIOStorage struct {
	core *minio.Core
}

// NewMinIOStorage creates a new MinIO storage client.
func NewMinIOStorage(cfg MinIOConfig) (*MinIOStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	core, err := minio.NewCore(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOStorage{core: core}, nil
}

// ListPage lists one page of objects with ListObjectsV2.
func (m *MinIOStorage) ListPage(ctx context.Context, bucket, prefix, token string, maxKeys int32) (domain.ListPage, error) {
	res, err := m.core.ListObjectsV2(bucket, prefix, "", token, "", int(maxKeys))
	if err != nil {
		return domain.ListPage{}, fmt.Errorf("list objects in %s: %w: %w", bucket, domain.ErrTransportUnavailable, err)
	}

	page := domain.ListPage{Objects: make([]domain.ObjectRef, 0, len(res.Contents))}
	for _, obj := range res.Contents {
		page.Objects = append(page.Objects, domain.ObjectRef{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	if res.IsTruncated {
		page.ContinuationToken = res.NextContinuationToken
	}

	return page, nil
}

// HeadObject stats a single object.
func (m *MinIOStorage) HeadObject(ctx context.Context, bucket, key string) (domain.ObjectHead, error) {
	info, err := m.core.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return domain.ObjectHead{}, classify(fmt.Sprintf("stat %s/%s", bucket, key), err)
	}

	return domain.ObjectHead{
		Key:          key,
		ContentType:  info.ContentType,
		Size:         info.Size,
		LastModified: info.LastModified,
	}, nil
}

// GetObject downloads an object into memory.
func (m *MinIOStorage) GetObject(ctx context.Context, bucket, key string) (domain.Object, error) {
	reader, info, _, err := m.core.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return domain.Object{}, classify(fmt.Sprintf("get %s/%s", bucket, key), err)
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		return domain.Object{}, fmt.Errorf("read %s/%s: %w: %w", bucket, key, domain.ErrTransportUnavailable, err)
	}

	return domain.Object{
		Key:         key,
		ContentType: info.ContentType,
		Body:        body,
	}, nil
}

// PutObject uploads body in a single request.
func (m *MinIOStorage) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	// A known size keeps minio-go off the multipart path
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to buffer upload body: %w", err)
	}

	_, err = m.core.Client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to minio: %w: %w", domain.ErrTransportUnavailable, err)
	}

	return nil
}

func classify(op string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey" {
		return fmt.Errorf("%s: %w", op, domain.ErrObjectNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrTransportUnavailable, err)
}
