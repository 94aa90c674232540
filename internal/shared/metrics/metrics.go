package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Digest run outcomes
const (
	DigestSent               = "sent"
	DigestMailFailed         = "mail_failed"
	DigestListingUnavailable = "listing_unavailable"
	DigestRenderFailed       = "render_failed"
)

var (
	DigestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "digest_runs_total",
		Help: "Total number of digest runs by outcome.",
	}, []string{"outcome"})

	DigestObjectsReported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "digest_objects_reported_total",
		Help: "Total number of objects listed in sent or attempted digests.",
	})

	DigestMetadataMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "digest_metadata_lookup_failures_total",
		Help: "Head lookups that failed and left an entry without a content type.",
	})

	ThumbnailRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thumbnail_records_total",
		Help: "Total number of creation event records by outcome.",
	}, []string{"outcome"})
)
