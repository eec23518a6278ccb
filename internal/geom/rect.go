package geom

import "math"

// RectParameters describes a rotated rectangle by its half-axes.
type RectParameters struct {
	Theta  float64 `json:"theta"`
	Scale  Point   `json:"scale"`
	Center Point   `json:"center"`
}

// ComputeParameters derives a rotated rectangle from the gesture anchor, the recorded control
// points and the live tracking point.
//
// With no control point the rectangle is axis-aligned and spans anchor→last. Once the first
// control point exists it fixes the aspect ratio while last fixes direction and length.
// A zero extent on either axis falls back to the axis-aligned form. The center always stays on
// the anchor.
func ComputeParameters(anchor Point, controls []Point, last Point) RectParameters {
	p0 := anchor
	p1 := last
	if len(controls) > 0 {
		p1 = controls[0]
	}
	p2 := last

	rx := math.Abs(p1.X - p0.X)
	ry := math.Abs(p1.Y - p0.Y)
	params := RectParameters{
		Theta:  0,
		Scale:  Point{X: rx, Y: ry},
		Center: p0,
	}
	if len(controls) == 0 || rx <= 0 || ry <= 0 {
		return params
	}

	hyp := Distance(p2, p0)
	params.Theta = math.Atan2(p2.Y-p0.Y, p2.X-p0.X)
	params.Scale = Point{X: hyp, Y: hyp * ry / rx}
	return params
}

// Corners returns the rectangle corners for p.
func (p RectParameters) Corners() [4]Point {
	return RectangleCorners(p.Theta, p.Scale, p.Center)
}

// RectangleCorners returns center ± major ± minor in the order (+,+), (−,+), (−,−), (+,−).
// Preview drawing and polygon expansion rely on that order.
func RectangleCorners(theta float64, scale, center Point) [4]Point {
	major := Rotate(theta, Point{X: scale.X})
	minor := Rotate(theta, Point{Y: scale.Y})
	return [4]Point{
		{X: center.X + major.X + minor.X, Y: center.Y + major.Y + minor.Y},
		{X: center.X - major.X + minor.X, Y: center.Y - major.Y + minor.Y},
		{X: center.X - major.X - minor.X, Y: center.Y - major.Y - minor.Y},
		{X: center.X + major.X - minor.X, Y: center.Y + major.Y - minor.Y},
	}
}
