package shape

import (
	"math"

	"github.com/frudas24/roiselect/internal/geom"
)

// Map returns a copy of s with fn applied to every coordinate. A rect maps its two corners and
// is renormalized, so fn should be axis-preserving (pan/zoom) for rect shapes.
func Map(s Shape, fn func(geom.Point) geom.Point) Shape {
	switch s.Type {
	case KindRect:
		a := fn(geom.Pt(s.Rect.X, s.Rect.Y))
		b := fn(geom.Pt(s.Rect.X+s.Rect.Width, s.Rect.Y+s.Rect.Height))
		return NewRect(Rect{
			X:      math.Min(a.X, b.X),
			Y:      math.Min(a.Y, b.Y),
			Width:  math.Abs(b.X - a.X),
			Height: math.Abs(b.Y - a.Y),
		})
	default:
		out := make([]geom.Point, len(s.Points))
		for i, p := range s.Points {
			out[i] = fn(p)
		}
		return Shape{Type: s.Type, Points: out}
	}
}

// BoundingRect returns the axis-aligned rectangle enclosing s.
func BoundingRect(s Shape) Rect {
	if s.Type == KindRect {
		return s.Rect
	}
	if len(s.Points) == 0 {
		return Rect{}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Expand grows s outward by delta. Rects grow on every side; polygons offset each edge along
// its outward normal. Point runs with fewer than three points are returned unchanged.
func Expand(s Shape, delta float64) Shape {
	switch s.Type {
	case KindRect:
		return NewRect(Rect{
			X:      s.Rect.X - delta,
			Y:      s.Rect.Y - delta,
			Width:  s.Rect.Width + 2*delta,
			Height: s.Rect.Height + 2*delta,
		})
	default:
		if len(s.Points) < 3 {
			return Shape{Type: s.Type, Points: clonePoints(s.Points)}
		}
		return Shape{Type: s.Type, Points: offsetRing(s.Points, delta)}
	}
}

// SignedArea returns the shoelace area of a ring; the sign gives its orientation.
func SignedArea(pts []geom.Point) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// offsetRing moves every vertex so both adjacent edges shift by delta.
func offsetRing(pts []geom.Point, delta float64) []geom.Point {
	sign := 1.0
	if SignedArea(pts) < 0 {
		sign = -1
	}
	n := len(pts)
	out := make([]geom.Point, n)
	for i, p := range pts {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		n1 := edgeNormal(prev, p, sign)
		n2 := edgeNormal(p, next, sign)
		switch {
		case n1 == (geom.Point{}):
			n1 = n2
		case n2 == (geom.Point{}):
			n2 = n1
		}
		denom := 1 + n1.X*n2.X + n1.Y*n2.Y
		if denom < 1e-9 {
			out[i] = geom.Shift(geom.Scale(geom.Pt(delta, delta), n1), p)
			continue
		}
		miter := geom.Pt((n1.X+n2.X)/denom, (n1.Y+n2.Y)/denom)
		out[i] = geom.Shift(geom.Scale(geom.Pt(delta, delta), miter), p)
	}
	return out
}

// edgeNormal returns the unit outward normal of a→b, or zero for a degenerate edge.
func edgeNormal(a, b geom.Point, sign float64) geom.Point {
	d := geom.Distance(a, b)
	if d == 0 {
		return geom.Point{}
	}
	dx := (b.X - a.X) / d
	dy := (b.Y - a.Y) / d
	return geom.Pt(sign*dy, -sign*dx)
}
