package domain

import "time"

// MaxPageSize is the largest number of entries a single listing page may hold.
const MaxPageSize = 1000

// ObjectRef is one entry produced by a listing call
type ObjectRef struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectHead holds the metadata returned by a head lookup
type ObjectHead struct {
	Key          string
	ContentType  string
	Size         int64
	LastModified time.Time
}

// Object is a fetched object body together with its declared content type
type Object struct {
	Key         string
	ContentType string
	Body        []byte
}

// ListPage is one page of a paginated listing.
// ContinuationToken is empty when the backend reports no further pages.
type ListPage struct {
	Objects           []ObjectRef
	ContinuationToken string
}
