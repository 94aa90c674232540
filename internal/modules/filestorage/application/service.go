package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
)

// FileService provides high-level object operations on top of a storage backend
type FileService struct {
	storage  domain.ObjectStorage
	pageSize int32
}

// NewFileService creates a new file service.
// pageSize is clamped to (0, domain.MaxPageSize]; zero selects the maximum.
func NewFileService(storage domain.ObjectStorage, pageSize int32) *FileService {
	if pageSize <= 0 || pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return &FileService{
		storage:  storage,
		pageSize: pageSize,
	}
}

// ListObjectsUnderPrefix collects every object stored under the folder prefix,
// following continuation tokens until the backend reports none remain. The
// folder marker itself (prefix + "/") is never returned.
//
// A failure on any page fails the whole enumeration: no partial result is returned.
// An empty folder yields an empty, non-nil slice.
func (s *FileService) ListObjectsUnderPrefix(ctx context.Context, bucket, prefix string) ([]domain.ObjectRef, error) {
	if bucket == "" {
		return nil, domain.ErrBucketRequired
	}

	folder := folderPrefix(prefix)
	objects := make([]domain.ObjectRef, 0)
	seen := make(map[string]struct{})
	token := ""

	for {
		page, err := s.storage.ListPage(ctx, bucket, folder, token, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", bucket, folder, err)
		}

		for _, obj := range page.Objects {
			if obj.Key == folder {
				continue
			}
			objects = append(objects, obj)
		}

		if page.ContinuationToken == "" {
			break
		}
		if _, dup := seen[page.ContinuationToken]; dup {
			return nil, fmt.Errorf("list %s/%s: %w", bucket, folder, domain.ErrPaginationLoop)
		}
		seen[page.ContinuationToken] = struct{}{}
		token = page.ContinuationToken
	}

	return objects, nil
}

// Head returns the metadata of a single object
func (s *FileService) Head(ctx context.Context, bucket, key string) (domain.ObjectHead, error) {
	return s.storage.HeadObject(ctx, bucket, key)
}

// Fetch downloads a single object
func (s *FileService) Fetch(ctx context.Context, bucket, key string) (domain.Object, error) {
	return s.storage.GetObject(ctx, bucket, key)
}

// Store uploads body under key
func (s *FileService) Store(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	return s.storage.PutObject(ctx, bucket, key, bytes.NewReader(body), contentType)
}

// folderPrefix turns "input-files" into the listing prefix "input-files/".
// An empty prefix lists the whole bucket.
func folderPrefix(prefix string) string {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
