package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowEndingAt(t *testing.T) {
	day := time.Date(2026, 10, 19, 15, 42, 0, 0, time.UTC)
	w := WindowEndingAt(day)

	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, "2026-10-18", w.Day())
}

func TestWindow_ContainsBoundaries(t *testing.T) {
	w := WindowEndingAt(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))

	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.True(t, w.Contains(w.End.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
}

func TestWindowEndingAt_Location(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	w := WindowEndingAt(time.Date(2026, 10, 19, 1, 0, 0, 0, ist))

	// 2026-10-18T00:00+05:30 is 2026-10-17T18:30Z
	assert.True(t, w.Contains(time.Date(2026, 10, 17, 18, 30, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, 10, 18, 18, 30, 0, 0, time.UTC)))
}

func TestWindowOf(t *testing.T) {
	w := WindowOf(time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, "2026-10-19", w.Day())
}

func TestWindowOf_MonthEndAndLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	w := WindowOf(time.Date(2026, 10, 31, 1, 30, 0, 0, kolkata))

	assert.Equal(t, "2026-10-31", w.Day())
	assert.Equal(t, time.Date(2026, 11, 1, 0, 0, 0, 0, kolkata), w.End)
	// 2026-10-31T00:00+05:30 is 2026-10-30T18:30Z
	assert.True(t, w.Contains(time.Date(2026, 10, 30, 18, 30, 0, 0, time.UTC)))
}

func TestNewEntryAndSubject(t *testing.T) {
	e := NewEntry("bucket", "input-files/report.pdf", 42, "application/pdf")
	assert.Equal(t, "s3://bucket/input-files/report.pdf", e.URI)
	assert.Equal(t, "report.pdf", e.FileName)
	assert.Equal(t, int64(42), e.Size)

	r := Report{Window: WindowOf(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))}
	assert.Equal(t, "Summary of objects added in bucket on 2026-10-19", r.Subject("bucket"))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-10-19", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("19/10/2026", time.UTC)
	require.Error(t, err)
}
