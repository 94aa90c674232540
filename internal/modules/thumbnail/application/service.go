package application

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	fsdomain "github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/domain"
	"github.com/saransh1220/bucket-events/internal/shared/metrics"
)

// ObjectStore is the storage capability the deriver consumes
type ObjectStore interface {
	Fetch(ctx context.Context, bucket, key string) (fsdomain.Object, error)
	Store(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// Resizer turns image bytes into a fixed-size PNG thumbnail
type Resizer interface {
	Thumbnail(src []byte, width, height int) ([]byte, error)
}

// Options configures the deriver
type Options struct {
	Namespace string
	Width     int
	Height    int
}

// Result is returned to the invoker. StatusCode is always 200.
type Result struct {
	StatusCode int                   `json:"statusCode"`
	Body       string                `json:"body"`
	RunID      string                `json:"runId"`
	Records    []domain.RecordResult `json:"records"`
}

const msgProcessed = "S3 Event processed successfully."

// ThumbnailService derives thumbnails for newly created images
type ThumbnailService struct {
	store   ObjectStore
	resizer Resizer
	opts    Options
}

// NewThumbnailService creates a new thumbnail service
func NewThumbnailService(store ObjectStore, resizer Resizer, opts Options) *ThumbnailService {
	if opts.Namespace == "" {
		opts.Namespace = domain.DefaultNamespace
	}
	if opts.Width <= 0 {
		opts.Width = domain.DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = domain.DefaultHeight
	}
	return &ThumbnailService{store: store, resizer: resizer, opts: opts}
}

// ProcessBatch handles each record in order. A failing record is logged and
// reported; it never stops the records after it.
func (s *ThumbnailService) ProcessBatch(ctx context.Context, records []domain.Record) Result {
	runID := uuid.NewString()
	results := make([]domain.RecordResult, 0, len(records))

	for _, rec := range records {
		res := s.Process(ctx, rec)
		metrics.ThumbnailRecords.WithLabelValues(string(res.Outcome)).Inc()
		if res.Outcome == domain.OutcomeFailed {
			log.Printf("[ThumbnailService.ProcessBatch] run=%s %s/%s failed after %s: %s", runID, rec.Bucket, rec.Key, res.Stage, res.Reason)
		}
		results = append(results, res)
	}

	log.Printf("[ThumbnailService.ProcessBatch] run=%s processed %d record(s)", runID, len(records))
	return Result{StatusCode: 200, Body: msgProcessed, RunID: runID, Records: results}
}

// Process runs one record through Fetched -> Classified -> Transformed -> Stored,
// stopping early when the object is ineligible or a step fails.
func (s *ThumbnailService) Process(ctx context.Context, rec domain.Record) domain.RecordResult {
	res := domain.RecordResult{Bucket: rec.Bucket, Key: rec.Key, Stage: domain.StageReceived}

	if domain.InNamespace(s.opts.Namespace, rec.Key) {
		return skip(res, domain.ErrThumbnailSource)
	}

	obj, err := s.store.Fetch(ctx, rec.Bucket, rec.Key)
	if err != nil {
		return fail(res, err)
	}
	res.Stage = domain.StageFetched

	if !domain.IsEligible(obj.ContentType, rec.Key) {
		return skip(res, fmt.Errorf("%w: content type %q", domain.ErrIneligible, obj.ContentType))
	}
	res.Stage = domain.StageClassified

	job := domain.NewJob(rec, s.opts.Namespace)
	res.DerivedKey = job.DerivedKey
	log.Printf("[ThumbnailService.Process] image %s/%s -> %s", rec.Bucket, rec.Key, job.DerivedKey)

	thumb, err := s.resizer.Thumbnail(obj.Body, s.opts.Width, s.opts.Height)
	if err != nil {
		return fail(res, fmt.Errorf("%w: %w", domain.ErrTransformUnavailable, err))
	}
	res.Stage = domain.StageTransformed

	if err := s.store.Store(ctx, job.SourceBucket, job.DerivedKey, thumb, domain.ContentType); err != nil {
		return fail(res, err)
	}
	res.Stage = domain.StageStored
	res.Outcome = domain.OutcomeStored
	return res
}

func skip(res domain.RecordResult, reason error) domain.RecordResult {
	res.Outcome = domain.OutcomeSkipped
	res.Reason = reason.Error()
	return res
}

func fail(res domain.RecordResult, err error) domain.RecordResult {
	res.Outcome = domain.OutcomeFailed
	res.Reason = err.Error()
	return res
}
