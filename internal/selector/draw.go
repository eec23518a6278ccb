package selector

import (
	"math"

	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
)

// strokeTwice traces path with the outer stroke, then again with the inner stroke.
func strokeTwice(s surface.Surface, outer, inner style.Stroke, path func()) error {
	for _, st := range [2]style.Stroke{outer, inner} {
		s.SetStroke(st.Color, st.Width)
		path()
		if err := s.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

// committedStrokes returns the outer/inner pair for a committed shape.
func committedStrokes(st style.Style, highlight bool) (style.Stroke, style.Stroke) {
	inner := style.Stroke{Color: st.InnerColor(highlight), Width: st.Inner.Width}
	return st.Outer, inner
}

// directedPath traces a rotated rectangle with a tick from its centre to the (+,−)/(+,+) edge,
// which marks the direction of the major axis.
func directedPath(s surface.Surface, corners []geom.Point) {
	mid := geom.Midpoint(corners[0], corners[3])
	c := geom.Centroid(corners)
	s.MoveTo(c.X, c.Y)
	s.LineTo(mid.X, mid.Y)
	for _, p := range corners {
		s.LineTo(p.X, p.Y)
	}
	s.LineTo(mid.X, mid.Y)
}

// runPath traces pts, closing the ring when closed is set.
func runPath(s surface.Surface, pts []geom.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	s.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.LineTo(p.X, p.Y)
	}
	if closed {
		s.ClosePath()
	}
}

// drawHandle draws the filled dot on the live point.
func drawHandle(s surface.Surface, p geom.Point, h style.Handle) error {
	s.SetFill(h.Fill)
	s.Arc(p.X, p.Y, h.Radius, 0, 2*math.Pi)
	if err := s.Fill(); err != nil {
		return err
	}
	s.SetStroke(h.Stroke.Color, h.Stroke.Width)
	s.Arc(p.X, p.Y, h.Radius, 0, 2*math.Pi)
	return s.Stroke()
}
