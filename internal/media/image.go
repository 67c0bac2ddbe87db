// Package media holds the capture and playback collaborators used by the
// games: picture loading, speech-to-text and text-to-speech.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	// Decoders for image.DecodeConfig / image.Decode.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/lyngdoh/curiouskids/internal/llm"
)

// DefaultMaxDimension is the longest side, in pixels, sent to the model.
const DefaultMaxDimension = 1024

var mimeTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// LoadImage reads a picture from disk and prepares it for the model.
// Pictures that fit within maxDim are sent unchanged; larger ones are
// scaled down and re-encoded as JPEG. maxDim <= 0 uses DefaultMaxDimension.
func LoadImage(path string, maxDim int) (*llm.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return PrepareImage(data, maxDim)
}

// PrepareImage is LoadImage for bytes already in memory.
func PrepareImage(data []byte, maxDim int) (*llm.Image, error) {
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	mime, ok := mimeTypes[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	if cfg.Width <= maxDim && cfg.Height <= maxDim {
		return &llm.Image{Data: data, MIMEType: mime}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	w, h := fitWithin(cfg.Width, cfg.Height, maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return &llm.Image{Data: buf.Bytes(), MIMEType: "image/jpeg"}, nil
}

// fitWithin scales w x h so the longer side equals maxDim.
func fitWithin(w, h, maxDim int) (int, int) {
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}
