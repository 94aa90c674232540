package resize

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// ImagingResizer produces PNG thumbnails with disintegration/imaging
type ImagingResizer struct {
	filter imaging.ResampleFilter
}

// NewImagingResizer creates a resizer using Lanczos resampling
func NewImagingResizer() *ImagingResizer {
	return &ImagingResizer{filter: imaging.Lanczos}
}

// Thumbnail decodes src (any format imaging understands), crops it to fill a
// width x height box around the center and encodes the result as PNG.
func (r *ImagingResizer) Thumbnail(src []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size %dx%d", width, height)
	}

	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("image decode error: %w", err)
	}

	dst := imaging.Fill(img, width, height, imaging.Center, r.filter)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, dst, imaging.PNG); err != nil {
		return nil, fmt.Errorf("image encode error: %w", err)
	}
	return buf.Bytes(), nil
}
