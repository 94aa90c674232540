package domain

import (
	"context"
	"io"
)

// ObjectStorage defines the object store operations both handlers rely on.
// This can be implemented by S3, MinIO, local filesystem, etc.
type ObjectStorage interface {
	// ListPage returns one page of objects whose keys start with prefix.
	// An empty token requests the first page.
	ListPage(ctx context.Context, bucket, prefix, token string, maxKeys int32) (ListPage, error)

	// HeadObject returns the metadata of a single object
	HeadObject(ctx context.Context, bucket, key string) (ObjectHead, error)

	// GetObject fetches the object bytes and declared content type
	GetObject(ctx context.Context, bucket, key string) (Object, error)

	// PutObject stores body under key with the given content type
	PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
}
