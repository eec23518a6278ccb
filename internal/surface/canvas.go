package surface

import (
	"image"
	"sync"

	"github.com/frudas24/roiselect/internal/style"
	"github.com/gogpu/gg"
)

// Canvas is a Surface rasterized in software by gg.
type Canvas struct {
	mu          sync.Mutex
	dc          *gg.Context
	strokeColor style.Color
	strokeWidth float64
	fillColor   style.Color
}

var _ Surface = (*Canvas)(nil)

// NewCanvas returns a transparent w×h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{dc: gg.NewContext(w, h), strokeWidth: 1}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.Width(), c.dc.Height()
}

// Resize changes the canvas dimensions and clears it.
func (c *Canvas) Resize(w, h int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.dc.Resize(w, h); err != nil {
		return err
	}
	c.dc.Clear()
	return nil
}

// Clear makes every pixel transparent and drops the pending path.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.ClearPath()
	c.dc.Clear()
}

// SetStroke sets the colour and width used by Stroke.
func (c *Canvas) SetStroke(col style.Color, width float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokeColor = col
	c.strokeWidth = width
}

// SetFill sets the colour used by Fill.
func (c *Canvas) SetFill(col style.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fillColor = col
}

// MoveTo starts a new subpath.
func (c *Canvas) MoveTo(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.MoveTo(x, y)
}

// LineTo appends a line segment.
func (c *Canvas) LineTo(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.LineTo(x, y)
}

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.ClosePath()
}

// Arc appends a circular arc centred on (x, y).
func (c *Canvas) Arc(x, y, r, a0, a1 float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.DrawArc(x, y, r, a0, a1)
}

// Rect appends a closed rectangle subpath.
func (c *Canvas) Rect(x, y, w, h float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.DrawRectangle(x, y, w, h)
}

// Stroke strokes and consumes the current path.
func (c *Canvas) Stroke() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, g, b, a := c.strokeColor.Components()
	c.dc.SetRGBA(r, g, b, a)
	c.dc.SetLineWidth(c.strokeWidth)
	return c.dc.Stroke()
}

// Fill fills and consumes the current path.
func (c *Canvas) Fill() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, g, b, a := c.fillColor.Components()
	c.dc.SetRGBA(r, g, b, a)
	return c.dc.Fill()
}

// Image returns a snapshot of the canvas pixels.
func (c *Canvas) Image() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dc.Image()
}
