package mjpeg

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

const defaultQuality = 60

// Encoder turns surface snapshots into JPEG frames.
type Encoder struct {
	// Quality is the JPEG quality, 1-100. Out of range values use 60.
	Quality int
	// Scale shrinks or grows the frame before encoding. Zero or 1 keeps the size.
	Scale float64
	// Background is painted under transparent pixels.
	Background color.Color
}

// Encode flattens img onto the background, rescales it and encodes it as JPEG.
func (e Encoder) Encode(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image")
	}
	bg := e.Background
	if bg == nil {
		bg = color.Black
	}
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), bg), img, image.Pt(0, 0), 1)

	var out image.Image = flat
	if e.Scale > 0 && e.Scale != 1 {
		w := max(1, int(float64(b.Dx())*e.Scale+0.5))
		h := max(1, int(float64(b.Dy())*e.Scale+0.5))
		out = imaging.Resize(flat, w, h, imaging.Lanczos)
	}

	q := e.Quality
	if q <= 0 || q > 100 {
		q = defaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// PublishImage encodes img with enc and publishes the frame.
func (s *Stream) PublishImage(enc Encoder, img image.Image) error {
	jpg, err := enc.Encode(img)
	if err != nil {
		return err
	}
	s.Publish(jpg)
	return nil
}
