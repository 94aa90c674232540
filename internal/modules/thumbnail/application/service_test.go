package application

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	fsdomain "github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/domain"
	"github.com/saransh1220/bucket-events/internal/shared/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storedObject struct {
	bucket, key, contentType string
	body                     []byte
}

type mockStore struct {
	objects map[string]fsdomain.Object
	fetchFn func(string) error
	storeFn func(string) error
	stored  []storedObject
}

func (m *mockStore) Fetch(_ context.Context, _, key string) (fsdomain.Object, error) {
	if m.fetchFn != nil {
		if err := m.fetchFn(key); err != nil {
			return fsdomain.Object{}, err
		}
	}
	obj, ok := m.objects[key]
	if !ok {
		return fsdomain.Object{}, fsdomain.ErrObjectNotFound
	}
	return obj, nil
}

func (m *mockStore) Store(_ context.Context, bucket, key string, body []byte, contentType string) error {
	if m.storeFn != nil {
		if err := m.storeFn(key); err != nil {
			return err
		}
	}
	m.stored = append(m.stored, storedObject{bucket: bucket, key: key, contentType: contentType, body: body})
	return nil
}

type mockResizer struct {
	calls int
}

func (m *mockResizer) Thumbnail(src []byte, width, height int) ([]byte, error) {
	m.calls++
	if bytes.Equal(src, []byte("corrupt")) {
		return nil, errors.New("image decode error")
	}
	return append([]byte("thumb:"), src...), nil
}

func object(key, contentType, body string) fsdomain.Object {
	return fsdomain.Object{Key: key, ContentType: contentType, Body: []byte(body)}
}

func TestThumbnailService_Process_Stored(t *testing.T) {
	store := &mockStore{objects: map[string]fsdomain.Object{
		"photos/cat.JPG": object("photos/cat.JPG", "image/jpeg", "cat"),
	}}
	svc := NewThumbnailService(store, &mockResizer{}, Options{})

	res := svc.Process(context.Background(), domain.Record{Bucket: "b", Key: "photos/cat.JPG"})

	assert.Equal(t, domain.OutcomeStored, res.Outcome)
	assert.Equal(t, domain.StageStored, res.Stage)
	assert.Equal(t, "image-thumbnails/cat_thumb.png", res.DerivedKey)
	require.Len(t, store.stored, 1)
	assert.Equal(t, storedObject{bucket: "b", key: "image-thumbnails/cat_thumb.png", contentType: "image/png", body: []byte("thumb:cat")}, store.stored[0])
}

func TestThumbnailService_Process_SkipsIneligible(t *testing.T) {
	store := &mockStore{objects: map[string]fsdomain.Object{
		"docs/a.png":  object("docs/a.png", "application/pdf", "pdf"),
		"icons/a.svg": object("icons/a.svg", "image/svg+xml", "<svg/>"),
	}}
	resizer := &mockResizer{}
	svc := NewThumbnailService(store, resizer, Options{})

	for _, key := range []string{"docs/a.png", "icons/a.svg"} {
		res := svc.Process(context.Background(), domain.Record{Bucket: "b", Key: key})
		assert.Equal(t, domain.OutcomeSkipped, res.Outcome, key)
		assert.Equal(t, domain.StageFetched, res.Stage, key)
		assert.Contains(t, res.Reason, domain.ErrIneligible.Error())
	}
	assert.Zero(t, resizer.calls)
	assert.Empty(t, store.stored)
}

func TestThumbnailService_Process_SkipsOwnThumbnails(t *testing.T) {
	store := &mockStore{fetchFn: func(string) error {
		t.Fatal("thumbnails must not be fetched")
		return nil
	}}
	svc := NewThumbnailService(store, &mockResizer{}, Options{Namespace: "thumbs"})

	res := svc.Process(context.Background(), domain.Record{Bucket: "b", Key: "thumbs/cat_thumb.png"})
	assert.Equal(t, domain.OutcomeSkipped, res.Outcome)
	assert.Equal(t, domain.StageReceived, res.Stage)
}

func TestThumbnailService_Process_Failures(t *testing.T) {
	store := &mockStore{
		objects: map[string]fsdomain.Object{"p/ok.png": object("p/ok.png", "image/png", "ok")},
		fetchFn: func(key string) error {
			if key == "p/offline.png" {
				return fsdomain.ErrTransportUnavailable
			}
			return nil
		},
		storeFn: func(string) error { return fsdomain.ErrTransportUnavailable },
	}
	svc := NewThumbnailService(store, &mockResizer{}, Options{})

	res := svc.Process(context.Background(), domain.Record{Bucket: "b", Key: "p/offline.png"})
	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	assert.Equal(t, domain.StageReceived, res.Stage)

	res = svc.Process(context.Background(), domain.Record{Bucket: "b", Key: "p/ok.png"})
	assert.Equal(t, domain.OutcomeFailed, res.Outcome)
	assert.Equal(t, domain.StageTransformed, res.Stage)
	assert.Contains(t, res.Reason, fsdomain.ErrTransportUnavailable.Error())
}

func TestThumbnailService_ProcessBatch_TransformFailureDoesNotStopBatch(t *testing.T) {
	store := &mockStore{objects: map[string]fsdomain.Object{
		"photos/one.jpg":    object("photos/one.jpg", "image/jpeg", "one"),
		"photos/broken.png": object("photos/broken.png", "image/png", "corrupt"),
		"photos/three.png":  object("photos/three.png", "image/png", "three"),
	}}
	svc := NewThumbnailService(store, &mockResizer{}, Options{})

	failedBefore := testutil.ToFloat64(metrics.ThumbnailRecords.WithLabelValues(string(domain.OutcomeFailed)))
	storedBefore := testutil.ToFloat64(metrics.ThumbnailRecords.WithLabelValues(string(domain.OutcomeStored)))

	res := svc.ProcessBatch(context.Background(), []domain.Record{
		{Bucket: "b", Key: "photos/one.jpg"},
		{Bucket: "b", Key: "photos/broken.png"},
		{Bucket: "b", Key: "photos/three.png"},
	})

	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "S3 Event processed successfully.", res.Body)
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Records, 3)
	assert.Equal(t, domain.OutcomeStored, res.Records[0].Outcome)
	assert.Equal(t, domain.OutcomeFailed, res.Records[1].Outcome)
	assert.Equal(t, domain.StageClassified, res.Records[1].Stage)
	assert.Contains(t, res.Records[1].Reason, domain.ErrTransformUnavailable.Error())
	assert.Equal(t, domain.OutcomeStored, res.Records[2].Outcome)

	require.Len(t, store.stored, 2)
	assert.Equal(t, "image-thumbnails/one_thumb.png", store.stored[0].key)
	assert.Equal(t, "image-thumbnails/three_thumb.png", store.stored[1].key)

	assert.Equal(t, failedBefore+1, testutil.ToFloat64(metrics.ThumbnailRecords.WithLabelValues(string(domain.OutcomeFailed))))
	assert.Equal(t, storedBefore+2, testutil.ToFloat64(metrics.ThumbnailRecords.WithLabelValues(string(domain.OutcomeStored))))
}

func TestThumbnailService_ProcessBatch_Empty(t *testing.T) {
	svc := NewThumbnailService(&mockStore{}, &mockResizer{}, Options{})
	res := svc.ProcessBatch(context.Background(), nil)
	assert.Equal(t, 200, res.StatusCode)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
}
