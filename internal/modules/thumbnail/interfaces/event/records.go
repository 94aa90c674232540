package event

import (
	"log"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/domain"
)

const createdPrefix = "ObjectCreated:"

// Records converts an S3 notification into thumbnail records. Keys arrive
// form-encoded ("my+photo.jpg") and are decoded here. Non-creation events
// are dropped.
func Records(evt events.S3Event) []domain.Record {
	records := make([]domain.Record, 0, len(evt.Records))
	for _, r := range evt.Records {
		if r.EventName != "" && !strings.HasPrefix(r.EventName, createdPrefix) {
			log.Printf("[event.Records] ignoring %s for %s", r.EventName, r.S3.Object.Key)
			continue
		}
		records = append(records, domain.Record{
			Bucket: r.S3.Bucket.Name,
			Key:    decodeKey(r.S3.Object.Key),
		})
	}
	return records
}

// Single builds a one-record event, used by the CLI
func Single(bucket, key string) events.S3Event {
	return events.S3Event{Records: []events.S3EventRecord{{
		EventName: createdPrefix + "Put",
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: bucket},
			Object: events.S3Object{Key: url.QueryEscape(key)},
		},
	}}}
}

func decodeKey(key string) string {
	decoded, err := url.QueryUnescape(key)
	if err != nil {
		log.Printf("[event.decodeKey] keeping raw key %q: %v", key, err)
		return key
	}
	return decoded
}
