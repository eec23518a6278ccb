package selector

import (
	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
	"github.com/frudas24/roiselect/internal/viewport"
)

// FreehandName is the registry name of the free-form selector.
const FreehandName = "freehand"

// NewFreehand returns a selector that records the pointer trace while dragging and commits it
// as a polygon on release.
func NewFreehand(d Deps) (*Machine, error) {
	return newMachine(d, &freehand{})
}

// freehand captures the raw pointer trace.
type freehand struct {
	started bool
	anchor  geom.Point
	coords  []geom.Point
}

// name returns the registry name.
func (f *freehand) name() string { return FreehandName }

// kind returns the registered shape kind.
func (f *freehand) kind() shape.Kind { return shape.KindLineString }

// reset starts an empty trace.
func (f *freehand) reset(anchor geom.Point) {
	*f = freehand{started: true, anchor: anchor}
}

// clear drops the trace.
func (f *freehand) clear() {
	*f = freehand{}
}

// track appends p to the trace.
func (f *freehand) track(p geom.Point) {
	f.coords = append(f.coords, p)
}

// release always finishes.
func (f *freehand) release(geom.Point) bool {
	return true
}

// shape converts the trace to item space like the other selectors do.
func (f *freehand) shape(toItem func(geom.Point) geom.Point) (shape.Shape, bool) {
	if !f.started {
		return shape.Shape{}, false
	}
	item := make([]geom.Point, len(f.coords))
	for i, p := range f.coords {
		item[i] = toItem(p)
	}
	return shape.NewPolygon(item), true
}

// bounds covers the anchor and the trace.
func (f *freehand) bounds() viewport.Bounds {
	return viewport.ComputeBounds(f.anchor, f.coords)
}

// preview strokes the trace so far.
func (f *freehand) preview(s surface.Surface, st style.Style) error {
	if len(f.coords) < 2 {
		return nil
	}
	s.SetStroke(st.Freehand.Color, st.Freehand.Width)
	runPath(s, f.coords, false)
	return s.Stroke()
}

// draw strokes a committed trace, closing polygons.
func (f *freehand) draw(s surface.Surface, sh shape.Shape, st style.Style, highlight bool) error {
	if sh.Type != shape.KindPolygon && sh.Type != shape.KindLineString {
		return nil
	}
	outer, inner := committedStrokes(st, highlight)
	closed := sh.Type == shape.KindPolygon
	return strokeTwice(s, outer, inner, func() { runPath(s, sh.Points, closed) })
}
