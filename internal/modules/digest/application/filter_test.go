package application

import (
	"testing"
	"time"

	fsdomain "github.com/saransh1220/bucket-events/internal/modules/filestorage/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilterByDay_Boundaries(t *testing.T) {
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -1)

	refs := []fsdomain.ObjectRef{
		{Key: "at-start", LastModified: start},
		{Key: "inside", LastModified: start.Add(13 * time.Hour)},
		{Key: "just-before-end", LastModified: today.Add(-time.Millisecond)},
		{Key: "at-end", LastModified: today},
		{Key: "before-start", LastModified: start.Add(-time.Second)},
		{Key: "later-today", LastModified: today.Add(9 * time.Hour)},
	}

	kept := FilterByDay(refs, today.Add(10*time.Hour))

	keys := make([]string, 0, len(kept))
	for _, r := range kept {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"at-start", "inside", "just-before-end"}, keys)
}

func TestFilterByDay_Empty(t *testing.T) {
	kept := FilterByDay(nil, time.Now())
	assert.NotNil(t, kept)
	assert.Empty(t, kept)
}

func TestFilterByDay_OtherZoneTimestamps(t *testing.T) {
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	// 2026-10-18T23:30-02:00 is 2026-10-19T01:30Z, outside yesterday in UTC
	late := time.Date(2026, 10, 18, 23, 30, 0, 0, time.FixedZone("X", -2*3600))

	kept := FilterByDay([]fsdomain.ObjectRef{{Key: "late", LastModified: late}}, today)
	assert.Empty(t, kept)
}
