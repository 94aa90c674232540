package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
)

// LocalStorage implements ObjectStorage using the local filesystem.
// Buckets are directories below basePath and keys are slash-separated paths.
type LocalStorage struct {
	basePath string
	create   func(name string) (io.WriteCloser, error)
}

// NewLocalStorage creates a new local filesystem storage
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Ensure directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath, create: createFile}, nil
}

// ListPage walks the bucket directory and returns keys in lexical order.
// The continuation token is the last key of the previous page.
func (l *LocalStorage) ListPage(ctx context.Context, bucket, prefix, token string, maxKeys int32) (domain.ListPage, error) {
	root, err := l.bucketDir(bucket)
	if err != nil {
		return domain.ListPage{}, err
	}

	var objects []domain.ObjectRef
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) || (token != "" && key <= token) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, domain.ObjectRef{Key: key, Size: info.Size(), LastModified: info.ModTime()})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ListPage{Objects: []domain.ObjectRef{}}, nil
	}
	if err != nil {
		return domain.ListPage{}, fmt.Errorf("walk %s: %w: %w", bucket, domain.ErrTransportUnavailable, err)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })

	page := domain.ListPage{Objects: objects}
	if maxKeys > 0 && len(objects) > int(maxKeys) {
		page.Objects = objects[:maxKeys]
		page.ContinuationToken = page.Objects[len(page.Objects)-1].Key
	}
	if page.Objects == nil {
		page.Objects = []domain.ObjectRef{}
	}
	return page, nil
}

// HeadObject stats the file; the content type is derived from the extension
func (l *LocalStorage) HeadObject(ctx context.Context, bucket, key string) (domain.ObjectHead, error) {
	full, err := l.fullPath(bucket, key)
	if err != nil {
		return domain.ObjectHead{}, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return domain.ObjectHead{}, classify(bucket, key, err)
	}

	return domain.ObjectHead{
		Key:          key,
		ContentType:  contentTypeOf(key),
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}, nil
}

// GetObject reads the whole file
func (l *LocalStorage) GetObject(ctx context.Context, bucket, key string) (domain.Object, error) {
	full, err := l.fullPath(bucket, key)
	if err != nil {
		return domain.Object{}, err
	}
	body, err := os.ReadFile(full)
	if err != nil {
		return domain.Object{}, classify(bucket, key, err)
	}

	return domain.Object{Key: key, ContentType: contentTypeOf(key), Body: body}, nil
}

// PutObject writes a file to the local filesystem
func (l *LocalStorage) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	fullPath, err := l.fullPath(bucket, key)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	outFile, err := l.create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(outFile, body); err != nil {
		outFile.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

// bucketDir maps a bucket to its directory. A bucket is a single path
// segment; anything that could leave basePath is rejected.
func (l *LocalStorage) bucketDir(bucket string) (string, error) {
	if bucket == "" {
		return "", domain.ErrBucketRequired
	}
	if bucket == "." || bucket == ".." || strings.ContainsAny(bucket, `/\`) {
		return "", fmt.Errorf("%q: %w", bucket, domain.ErrInvalidBucket)
	}

	dir := filepath.Join(l.basePath, bucket)
	if rel, err := filepath.Rel(l.basePath, dir); err != nil || rel != bucket {
		return "", fmt.Errorf("%q: %w", bucket, domain.ErrInvalidBucket)
	}
	return dir, nil
}

func (l *LocalStorage) fullPath(bucket, key string) (string, error) {
	dir, err := l.bucketDir(bucket)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(path.Clean("/"+key))), nil
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func classify(bucket, key string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s/%s: %w", bucket, key, domain.ErrObjectNotFound)
	}
	return fmt.Errorf("%s/%s: %w: %w", bucket, key, domain.ErrTransportUnavailable, err)
}

func contentTypeOf(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
