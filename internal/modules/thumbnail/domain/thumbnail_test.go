package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivedKey(t *testing.T) {
	assert.Equal(t, "image-thumbnails/cat_thumb.png", DerivedKey("photos/cat.jpg"))
	assert.Equal(t, "image-thumbnails/cat_thumb.png", DerivedKey("photos/cat.JPG"))
	assert.Equal(t, "image-thumbnails/Cat_thumb.png", DerivedKey("photos/Cat.jpeg"))
	assert.Equal(t, "image-thumbnails/archive.tar_thumb.png", DerivedKey("a/b/archive.tar.png"))
	assert.Equal(t, "image-thumbnails/top_thumb.png", DerivedKey("top.png"))
	assert.Equal(t, "thumbs/cat_thumb.png", DerivedKeyIn("/thumbs/", "photos/cat.jpg"))

	// pure: same input, same key
	assert.Equal(t, DerivedKey("x/y.png"), DerivedKey("x/y.png"))
}

func TestNewJob(t *testing.T) {
	job := NewJob(Record{Bucket: "b", Key: "photos/dog.png"}, DefaultNamespace)
	assert.Equal(t, Job{SourceBucket: "b", SourceKey: "photos/dog.png", DerivedKey: "image-thumbnails/dog_thumb.png"}, job)
}

func TestIsEligible(t *testing.T) {
	cases := []struct {
		contentType string
		key         string
		want        bool
	}{
		{"image/png", "a.png", true},
		{"image/jpeg", "photos/a.JPG", true},
		{"image/jpeg", "photos/a.jpeg", true},
		{"image/svg+xml", "a.svg", false},
		{"application/pdf", "a.png", false},
		{"image/png", "a.gif", false},
		{"", "a.png", false},
	}
	for _, tc := range cases {
		t.Run(tc.contentType+" "+tc.key, func(t *testing.T) {
			assert.Equal(t, tc.want, IsEligible(tc.contentType, tc.key))
		})
	}
}

func TestInNamespace(t *testing.T) {
	assert.True(t, InNamespace("image-thumbnails", "image-thumbnails/cat_thumb.png"))
	assert.False(t, InNamespace("image-thumbnails", "photos/cat.png"))
	assert.False(t, InNamespace("image-thumbnails", "image-thumbnails-old/cat.png"))
}
