package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/saransh1220/bucket-events/internal/modules/digest/domain"
	fsdomain "github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
	maildomain "github.com/saransh1220/bucket-events/internal/modules/mailer/domain"
	"github.com/saransh1220/bucket-events/internal/shared/metrics"
)

// FileService is the storage capability the digest consumes
type FileService interface {
	ListObjectsUnderPrefix(ctx context.Context, bucket, prefix string) ([]fsdomain.ObjectRef, error)
	Head(ctx context.Context, bucket, key string) (fsdomain.ObjectHead, error)
}

// Options configures a digest run
type Options struct {
	Bucket   string
	Prefix   string
	From     string
	To       string
	Location *time.Location
}

// Result is returned to the invoker. StatusCode is always 200.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
	RunID      string `json:"runId"`
	Day        string `json:"day"`
	Entries    int    `json:"entries"`
	Outcome    string `json:"outcome"`
}

const (
	msgSent               = "Summary generated and email sent."
	msgMailFailed         = "Summary generated; email delivery failed."
	msgListingUnavailable = "Summary skipped: object listing unavailable."
	msgRenderFailed       = "Summary skipped: report rendering failed."
)

// ErrListingUnavailable means the enumeration failed and nothing can be reported
var ErrListingUnavailable = errors.New("object listing unavailable")

// DigestService lists the objects added during a day and mails a summary
type DigestService struct {
	files  FileService
	mailer maildomain.Mailer
	opts   Options
	now    func() time.Time
}

// NewDigestService creates a new digest service
func NewDigestService(files FileService, mailer maildomain.Mailer, opts Options) *DigestService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &DigestService{
		files:  files,
		mailer: mailer,
		opts:   opts,
		now:    time.Now,
	}
}

// Location is the time zone day boundaries are computed in
func (s *DigestService) Location() *time.Location {
	return s.opts.Location
}

// RunToday reports on the objects added so far today
func (s *DigestService) RunToday(ctx context.Context) Result {
	return s.Run(ctx, s.now())
}

// Run reports on the objects added during the calendar day containing day,
// taken in the configured location, and emails the report. Failures are
// logged and reflected in Outcome; they never change StatusCode.
func (s *DigestService) Run(ctx context.Context, day time.Time) Result {
	runID := uuid.NewString()
	result := Result{StatusCode: 200, RunID: runID}

	report, err := s.BuildReport(ctx, day)
	switch {
	case errors.Is(err, ErrListingUnavailable):
		log.Printf("[DigestService.Run] run=%s %v", runID, err)
		metrics.DigestRuns.WithLabelValues(metrics.DigestListingUnavailable).Inc()
		result.Body, result.Outcome = msgListingUnavailable, metrics.DigestListingUnavailable
		return result
	case err != nil:
		log.Printf("[DigestService.Run] run=%s %v", runID, err)
		metrics.DigestRuns.WithLabelValues(metrics.DigestRenderFailed).Inc()
		result.Body, result.Outcome = msgRenderFailed, metrics.DigestRenderFailed
		return result
	}

	result.Day = report.Window.Day()
	result.Entries = len(report.Entries)
	metrics.DigestObjectsReported.Add(float64(len(report.Entries)))

	if err := s.Dispatch(ctx, report); err != nil {
		log.Printf("[DigestService.Run] run=%s email for %s not sent: %v", runID, result.Day, err)
		metrics.DigestRuns.WithLabelValues(metrics.DigestMailFailed).Inc()
		result.Body, result.Outcome = msgMailFailed, metrics.DigestMailFailed
		return result
	}

	log.Printf("[DigestService.Run] run=%s sent digest for %s with %d objects", runID, result.Day, result.Entries)
	metrics.DigestRuns.WithLabelValues(metrics.DigestSent).Inc()
	result.Body, result.Outcome = msgSent, metrics.DigestSent
	return result
}

// BuildReport enumerates the prefix, keeps the objects of day's calendar
// day, enriches each with its content type and renders the table.
func (s *DigestService) BuildReport(ctx context.Context, day time.Time) (domain.Report, error) {
	day = day.In(s.opts.Location)
	report := domain.Report{Window: domain.WindowOf(day)}

	objects, err := s.files.ListObjectsUnderPrefix(ctx, s.opts.Bucket, s.opts.Prefix)
	if err != nil {
		return report, errors.Join(ErrListingUnavailable, err)
	}

	refs := FilterByDay(objects, report.Window.End)
	report.Entries = make([]domain.Entry, 0, len(refs))
	for _, ref := range refs {
		report.Entries = append(report.Entries, s.enrich(ctx, ref))
	}

	report.HTML, err = RenderReport(report.Entries)
	return report, err
}

// Dispatch sends the report as a single email
func (s *DigestService) Dispatch(ctx context.Context, report domain.Report) error {
	return s.mailer.Send(ctx, maildomain.Message{
		From:     s.opts.From,
		To:       s.opts.To,
		Subject:  report.Subject(s.opts.Bucket),
		HTMLBody: report.HTML,
	})
}

// enrich looks up the content type; on failure the entry keeps an empty one
func (s *DigestService) enrich(ctx context.Context, ref fsdomain.ObjectRef) domain.Entry {
	contentType := ""
	head, err := s.files.Head(ctx, s.opts.Bucket, ref.Key)
	if err != nil {
		log.Printf("[DigestService.enrich] metadata lookup failed for %s/%s: %v", s.opts.Bucket, ref.Key, err)
		metrics.DigestMetadataMisses.Inc()
	} else {
		contentType = head.ContentType
	}
	return domain.NewEntry(s.opts.Bucket, ref.Key, ref.Size, contentType)
}
