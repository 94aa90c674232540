package domain

import "errors"

var (
	ErrTransportUnavailable = errors.New("storage transport unavailable")
	ErrObjectNotFound       = errors.New("object not found")
	ErrBucketRequired       = errors.New("bucket name is required")
	ErrInvalidBucket        = errors.New("invalid bucket name")
	ErrPaginationLoop       = errors.New("listing returned a repeated continuation token")
)
