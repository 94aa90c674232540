package domain

import (
	"fmt"
	"path"
	"time"
)

const dayLayout = "2006-01-02"

// Entry is one row of the digest report
type Entry struct {
	URI         string
	FileName    string
	ContentType string
	Size        int64
}

// NewEntry builds a report row for an object. contentType is empty when the
// metadata lookup failed.
func NewEntry(bucket, key string, size int64, contentType string) Entry {
	return Entry{
		URI:         fmt.Sprintf("s3://%s/%s", bucket, key),
		FileName:    path.Base(key),
		ContentType: contentType,
		Size:        size,
	}
}

// Window is the half-open interval [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowEndingAt returns the 24h calendar day that ends where day begins,
// computed in day's location.
func WindowEndingAt(day time.Time) Window {
	y, m, d := day.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return Window{Start: end.AddDate(0, 0, -1), End: end}
}

// WindowOf returns the calendar day containing day, i.e. the window ending
// at the start of the following day.
func WindowOf(day time.Time) Window {
	return WindowEndingAt(NextDayStart(day))
}

// NextDayStart is midnight after day, in day's location
func NextDayStart(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, day.Location())
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Day is the reported calendar date
func (w Window) Day() string {
	return w.Start.Format(dayLayout)
}

// Report is a rendered digest ready to be mailed
type Report struct {
	Window  Window
	Entries []Entry
	HTML    string
}

// Subject returns the email subject for a digest of bucket
func (r Report) Subject(bucket string) string {
	return fmt.Sprintf("Summary of objects added in %s on %s", bucket, r.Window.Day())
}

// ParseDay parses a YYYY-MM-DD date in loc
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayLayout, value, loc)
}
