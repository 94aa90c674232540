package thumbnail

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/application"
	"github.com/saransh1220/bucket-events/internal/modules/filestorage/infrastructure/local"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/domain"
	"github.com/saransh1220/bucket-events/internal/modules/thumbnail/infrastructure/resize"
	"github.com/saransh1220/bucket-events/internal/shared/infrastructure/config"
	"github.com/stretchr/testify/require"
)

func TestModule_EndToEndWithLocalStorage(t *testing.T) {
	base := t.TempDir()
	store, err := local.NewLocalStorage(base)
	require.NoError(t, err)
	ctx := context.Background()

	img := imaging.New(400, 300, color.NRGBA{G: 180, A: 255})
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, img, imaging.JPEG))
	require.NoError(t, store.PutObject(ctx, "photos", "uploads/beach.jpg", bytes.NewReader(buf.Bytes()), "image/jpeg"))
	require.NoError(t, store.PutObject(ctx, "photos", "uploads/notes.txt", bytes.NewBufferString("hi"), "text/plain"))

	m := NewModule(application.NewFileService(store, 0), resize.NewImagingResizer(),
		config.ThumbnailConfig{Prefix: "thumbs", Width: 64, Height: 64})
	require.NotNil(t, m.HTTPHandler())

	res := m.Service().ProcessBatch(ctx, []domain.Record{
		{Bucket: "photos", Key: "uploads/beach.jpg"},
		{Bucket: "photos", Key: "uploads/notes.txt"},
		{Bucket: "photos", Key: "uploads/missing.png"},
	})
	require.Equal(t, 200, res.StatusCode)
	require.Equal(t, domain.OutcomeStored, res.Records[0].Outcome)
	require.Equal(t, domain.OutcomeSkipped, res.Records[1].Outcome)
	require.Equal(t, domain.OutcomeFailed, res.Records[2].Outcome)

	data, err := os.ReadFile(filepath.Join(base, "photos", "thumbs", "beach_thumb.png"))
	require.NoError(t, err)
	thumb, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 64, thumb.Bounds().Dx())
	require.Equal(t, 64, thumb.Bounds().Dy())
}
