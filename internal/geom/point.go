// Package geom holds the pure 2D math behind the selectors.
package geom

import "github.com/gogpu/gg"

// Point is a real-valued coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rotate rotates p by theta radians around the origin.
func Rotate(theta float64, p Point) Point {
	return fromGG(toGG(p).Rotate(theta))
}

// Scale multiplies p componentwise by s.
func Scale(s, p Point) Point {
	return Point{X: p.X * s.X, Y: p.Y * s.Y}
}

// Shift adds delta to p componentwise.
func Shift(delta, p Point) Point {
	return Point{X: delta.X + p.X, Y: delta.Y + p.Y}
}

// Reciprocal returns {1/s.X, 1/s.Y}. Callers must guard zero components.
func Reciprocal(s Point) Point {
	return Point{X: 1 / s.X, Y: 1 / s.Y}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return toGG(a).Distance(toGG(b))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return fromGG(toGG(a).Lerp(toGG(b), 0.5))
}

// Centroid returns the arithmetic mean of pts, or the zero point for an empty slice.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sum gg.Point
	for _, p := range pts {
		sum = sum.Add(toGG(p))
	}
	return fromGG(sum.Div(float64(len(pts))))
}

// toGG converts to the rasterizer point type.
func toGG(p Point) gg.Point {
	return gg.Pt(p.X, p.Y)
}

// fromGG converts from the rasterizer point type.
func fromGG(p gg.Point) Point {
	return Point{X: p.X, Y: p.Y}
}
