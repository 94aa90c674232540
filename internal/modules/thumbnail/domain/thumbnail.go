package domain

import (
	"path"
	"strings"
)

const (
	DefaultNamespace = "image-thumbnails"
	DefaultWidth     = 200
	DefaultHeight    = 200

	suffix      = "_thumb"
	extension   = ".png"
	ContentType = "image/png"
)

// EligibleExtensions are the key suffixes accepted for thumbnailing,
// matched case-insensitively.
var EligibleExtensions = []string{".jpg", ".jpeg", ".png"}

// Record is one object-creation notification
type Record struct {
	Bucket string
	Key    string
}

// Job describes the thumbnail to derive for a record
type Job struct {
	SourceBucket string
	SourceKey    string
	DerivedKey   string
}

// NewJob derives the thumbnail key for rec under namespace
func NewJob(rec Record, namespace string) Job {
	return Job{
		SourceBucket: rec.Bucket,
		SourceKey:    rec.Key,
		DerivedKey:   DerivedKeyIn(namespace, rec.Key),
	}
}

// DerivedKey returns the thumbnail key in the default namespace:
// "photos/cat.jpg" becomes "image-thumbnails/cat_thumb.png".
func DerivedKey(sourceKey string) string {
	return DerivedKeyIn(DefaultNamespace, sourceKey)
}

// DerivedKeyIn is a pure function of its inputs. The basename keeps its
// original case; only the last extension is dropped.
func DerivedKeyIn(namespace, sourceKey string) string {
	base := path.Base(sourceKey)
	name := strings.TrimSuffix(base, path.Ext(base))
	return strings.Trim(namespace, "/") + "/" + name + suffix + extension
}

// InNamespace reports whether key already lives under namespace
func InNamespace(namespace, key string) bool {
	return strings.HasPrefix(key, strings.Trim(namespace, "/")+"/")
}

// IsEligible requires both an image media type and an allow-listed extension
func IsEligible(contentType, key string) bool {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return false
	}
	lower := strings.ToLower(key)
	for _, ext := range EligibleExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Outcome is the terminal state of a record
type Outcome string

const (
	OutcomeStored  Outcome = "stored"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Stage is the last step a record completed: Fetched, Classified,
// Transformed, Stored.
type Stage string

const (
	StageReceived    Stage = "received"
	StageFetched     Stage = "fetched"
	StageClassified  Stage = "classified"
	StageTransformed Stage = "transformed"
	StageStored      Stage = "stored"
)

// RecordResult reports what happened to one record
type RecordResult struct {
	Bucket     string  `json:"bucket"`
	Key        string  `json:"key"`
	DerivedKey string  `json:"derivedKey,omitempty"`
	Stage      Stage   `json:"stage"`
	Outcome    Outcome `json:"outcome"`
	Reason     string  `json:"reason,omitempty"`
}
