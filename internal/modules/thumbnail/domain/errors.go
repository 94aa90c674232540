package domain

import "errors"

var (
	ErrTransformUnavailable = errors.New("image transform unavailable")
	ErrIneligible           = errors.New("object is not an eligible image")
	ErrThumbnailSource      = errors.New("object is already a derived thumbnail")
)
