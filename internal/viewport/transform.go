package viewport

import (
	"github.com/frudas24/roiselect/internal/geom"
	"github.com/gogpu/gg"
)

// Transform converts between item space and viewport space.
// The forward matrix maps item coordinates onto viewport pixels.
type Transform struct {
	forward gg.Matrix
	inverse gg.Matrix
}

// Identity returns a transform where item and viewport coordinates coincide.
func Identity() Transform {
	return Transform{forward: gg.Identity(), inverse: gg.Identity()}
}

// NewTransform returns the transform for an item drawn at zoom and offset by (panX, panY)
// viewport pixels. A non-positive zoom is treated as 1.
func NewTransform(zoom, panX, panY float64) Transform {
	if zoom <= 0 {
		zoom = 1
	}
	return FromMatrix(gg.Translate(panX, panY).Multiply(gg.Scale(zoom, zoom)))
}

// FromMatrix builds a transform from an item→viewport matrix.
// Singular matrices invert to identity, which is what gg does.
func FromMatrix(m gg.Matrix) Transform {
	return Transform{forward: m, inverse: m.Invert()}
}

// ToItem maps a viewport point into item space.
func (t Transform) ToItem(p geom.Point) geom.Point {
	q := t.inverseMatrix().TransformPoint(gg.Pt(p.X, p.Y))
	return geom.Pt(q.X, q.Y)
}

// ToViewport maps an item point into viewport space.
func (t Transform) ToViewport(p geom.Point) geom.Point {
	q := t.forwardMatrix().TransformPoint(gg.Pt(p.X, p.Y))
	return geom.Pt(q.X, q.Y)
}

// Matrix returns the item→viewport matrix.
func (t Transform) Matrix() gg.Matrix {
	return t.forwardMatrix()
}

// forwardMatrix treats the zero Transform as identity.
func (t Transform) forwardMatrix() gg.Matrix {
	if t.forward == (gg.Matrix{}) {
		return gg.Identity()
	}
	return t.forward
}

// inverseMatrix treats the zero Transform as identity.
func (t Transform) inverseMatrix() gg.Matrix {
	if t.inverse == (gg.Matrix{}) {
		return gg.Identity()
	}
	return t.inverse
}
