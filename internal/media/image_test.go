package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareImageKeepsSmallPictures(t *testing.T) {
	data := pngBytes(t, 20, 10)

	img, err := PrepareImage(data, 64)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, data, img.Data)
}

func TestPrepareImageDownscales(t *testing.T) {
	data := pngBytes(t, 200, 100)

	img, err := PrepareImage(data, 50)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 25, cfg.Height)
}

func TestPrepareImageRejectsGarbage(t *testing.T) {
	_, err := PrepareImage([]byte("not a picture"), 0)
	assert.Error(t, err)
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 8, 8), 0o644))

	img, err := LoadImage(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"), 0)
	assert.Error(t, err)
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(4000, 3000, 1024)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	w, h = fitWithin(10, 5000, 100)
	assert.Equal(t, 1, w)
	assert.Equal(t, 100, h)
}
