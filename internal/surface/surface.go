// Package surface defines the drawing surface selectors render onto.
package surface

import "github.com/frudas24/roiselect/internal/style"

// Surface is a canvas-like immediate-mode drawing target.
// Path calls accumulate until Stroke or Fill, which consume the path.
type Surface interface {
	Size() (w, h int)
	Clear()
	SetStroke(c style.Color, width float64)
	SetFill(c style.Color)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Arc(x, y, r, a0, a1 float64)
	Rect(x, y, w, h float64)
	Stroke() error
	Fill() error
}
