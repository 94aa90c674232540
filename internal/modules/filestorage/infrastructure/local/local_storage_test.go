package local

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_EndToEnd(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, ls.PutObject(ctx, "bucket", "photos/cat.png", bytes.NewBufferString("png"), "image/png"))

	head, err := ls.HeadObject(ctx, "bucket", "photos/cat.png")
	require.NoError(t, err)
	require.Equal(t, "image/png", head.ContentType)
	require.Equal(t, int64(3), head.Size)

	obj, err := ls.GetObject(ctx, "bucket", "photos/cat.png")
	require.NoError(t, err)
	require.Equal(t, []byte("png"), obj.Body)

	_, err = ls.GetObject(ctx, "bucket", "photos/missing.png")
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
	_, err = ls.HeadObject(ctx, "bucket", "photos/missing.png")
	require.ErrorIs(t, err, domain.ErrObjectNotFound)
}

func TestLocalStorage_ListPage(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("input-files/f%d.txt", i)
		require.NoError(t, ls.PutObject(ctx, "bucket", key, bytes.NewBufferString("x"), "text/plain"))
	}
	require.NoError(t, ls.PutObject(ctx, "bucket", "elsewhere/g.txt", bytes.NewBufferString("x"), "text/plain"))

	page, err := ls.ListPage(ctx, "bucket", "input-files/", "", 3)
	require.NoError(t, err)
	require.Len(t, page.Objects, 3)
	require.Equal(t, "input-files/f2.txt", page.ContinuationToken)

	page, err = ls.ListPage(ctx, "bucket", "input-files/", page.ContinuationToken, 3)
	require.NoError(t, err)
	require.Len(t, page.Objects, 2)
	require.Equal(t, "input-files/f3.txt", page.Objects[0].Key)
	require.Empty(t, page.ContinuationToken)

	page, err = ls.ListPage(ctx, "no-such-bucket", "", "", 3)
	require.NoError(t, err)
	require.NotNil(t, page.Objects)
	require.Empty(t, page.Objects)
}

func TestLocalStorage_RejectsBucketsOutsideBase(t *testing.T) {
	parent := t.TempDir()
	base := filepath.Join(parent, "storage")
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)
	ctx := context.Background()

	for _, bucket := range []string{"../escaped", "..", ".", "a/b", `a\b`} {
		err := ls.PutObject(ctx, bucket, "x.txt", bytes.NewBufferString("x"), "text/plain")
		require.ErrorIs(t, err, domain.ErrInvalidBucket, bucket)

		_, err = ls.ListPage(ctx, bucket, "", "", 10)
		require.ErrorIs(t, err, domain.ErrInvalidBucket, bucket)
		_, err = ls.GetObject(ctx, bucket, "x.txt")
		require.ErrorIs(t, err, domain.ErrInvalidBucket, bucket)
		_, err = ls.HeadObject(ctx, bucket, "x.txt")
		require.ErrorIs(t, err, domain.ErrInvalidBucket, bucket)
	}

	_, err = os.Stat(filepath.Join(parent, "escaped", "x.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	err = ls.PutObject(ctx, "", "x.txt", bytes.NewBufferString("x"), "text/plain")
	require.ErrorIs(t, err, domain.ErrBucketRequired)
}

func TestLocalStorage_KeysStayInsideBucket(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	require.NoError(t, ls.PutObject(context.Background(), "bucket", "../../up.txt", bytes.NewBufferString("x"), "text/plain"))

	_, err = os.Stat(filepath.Join(base, "bucket", "up.txt"))
	require.NoError(t, err)
}

type failingFile struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *failingFile) Close() error {
	f.closed = true
	return f.closeErr
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestLocalStorage_PutObject_ReportsCloseError(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	file := &failingFile{closeErr: errors.New("disk full")}
	ls.create = func(string) (io.WriteCloser, error) { return file, nil }

	err = ls.PutObject(context.Background(), "bucket", "a.txt", bytes.NewBufferString("data"), "text/plain")

	require.ErrorContains(t, err, "failed to close file")
	require.ErrorIs(t, err, file.closeErr)
	require.True(t, file.closed)
	require.Equal(t, "data", file.String())
}

func TestLocalStorage_PutObject_ClosesOnWriteError(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	file := &failingFile{}
	ls.create = func(string) (io.WriteCloser, error) { return file, nil }

	err = ls.PutObject(context.Background(), "bucket", "a.txt", failingReader{}, "text/plain")

	require.ErrorContains(t, err, "failed to write file")
	require.True(t, file.closed)
}

func TestContentTypeOf(t *testing.T) {
	require.Equal(t, "image/jpeg", contentTypeOf("a/B.JPG"))
	require.Equal(t, "application/octet-stream", contentTypeOf("a/noext"))
}
