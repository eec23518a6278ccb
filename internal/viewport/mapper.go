package viewport

import (
	"math"

	"github.com/frudas24/roiselect/internal/geom"
)

// NormToViewport maps normalized browser coordinates onto a w×h viewport.
func NormToViewport(xn, yn float64, w, h int) geom.Point {
	xn = clamp01(xn)
	yn = clamp01(yn)
	return geom.Pt(float64(normToPixels(xn, w)), float64(normToPixels(yn, h)))
}

// normToPixels maps a clamped [0..1] value onto 0..span-1.
func normToPixels(norm float64, span int) int {
	if span <= 1 {
		return 0
	}
	return int(math.Round(norm * float64(span-1)))
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
