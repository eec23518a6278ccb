package selector

import (
	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
	"github.com/frudas24/roiselect/internal/viewport"
)

// DirectedRectName is the registry name of the directed rectangle selector.
const DirectedRectName = "directed_rect"

// directedExpand is how far a committed directed rectangle is grown before drawing.
const directedExpand = 1.2

// NewDirectedRect returns a selector for rotated rectangles.
//
// The first press-drag-release fixes the aspect ratio (anchor to first control point). The
// pointer then steers direction and length until a second release commits a four-point polygon.
func NewDirectedRect(d Deps) (*Machine, error) {
	return newMachine(d, &directedRect{})
}

// directedRect captures the anchor, two control points and the live pointer.
type directedRect struct {
	started  bool
	anchor   geom.Point
	points   []geom.Point
	tracking geom.Point
}

// name returns the registry name.
func (d *directedRect) name() string { return DirectedRectName }

// kind returns the registered shape kind.
func (d *directedRect) kind() shape.Kind { return shape.KindPolygon }

// reset anchors a new gesture and drops previous control points.
func (d *directedRect) reset(anchor geom.Point) {
	d.started = true
	d.anchor = anchor
	d.points = nil
	d.tracking = anchor
}

// clear forgets the gesture.
func (d *directedRect) clear() {
	*d = directedRect{}
}

// track follows the live pointer.
func (d *directedRect) track(p geom.Point) {
	d.tracking = p
}

// release records a control point; the second one finishes the gesture.
func (d *directedRect) release(p geom.Point) bool {
	done := len(d.points) == 1
	d.points = append(d.points, p)
	d.tracking = p
	return done
}

// shape returns the rotated rectangle corners in item space.
func (d *directedRect) shape(toItem func(geom.Point) geom.Point) (shape.Shape, bool) {
	if !d.started || len(d.points) == 0 {
		return shape.Shape{}, false
	}
	params := geom.ComputeParameters(d.anchor, d.points, d.points[len(d.points)-1])
	corners := params.Corners()
	item := make([]geom.Point, len(corners))
	for i, c := range corners {
		item[i] = toItem(c)
	}
	return shape.NewPolygon(item), true
}

// bounds covers the anchor and every control point.
func (d *directedRect) bounds() viewport.Bounds {
	return viewport.ComputeBounds(d.anchor, d.points)
}

// preview outlines the live rectangle and marks the pointer once the aspect ratio is fixed.
func (d *directedRect) preview(s surface.Surface, st style.Style) error {
	params := geom.ComputeParameters(d.anchor, d.points, d.tracking)
	corners := params.Corners()
	if err := strokeTwice(s, st.Outer, st.Inner, func() { directedPath(s, corners[:]) }); err != nil {
		return err
	}
	if len(d.points) == 1 {
		return drawHandle(s, d.tracking, st.Handle)
	}
	return nil
}

// draw strokes a committed polygon grown slightly so it sits outside the selected pixels.
func (d *directedRect) draw(s surface.Surface, sh shape.Shape, st style.Style, highlight bool) error {
	if sh.Type != shape.KindPolygon {
		return nil
	}
	pts := shape.Expand(sh, directedExpand).Points
	outer, inner := committedStrokes(st, highlight)
	return strokeTwice(s, outer, inner, func() {
		if len(pts) == 4 {
			directedPath(s, pts)
			return
		}
		runPath(s, pts, true)
	})
}
