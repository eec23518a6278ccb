// Package viewport maps between browser pixels, viewport space and item space.
package viewport

import "github.com/frudas24/roiselect/internal/geom"

// Bounds is an axis-aligned box in viewport pixels.
type Bounds struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// ComputeBounds returns the box over anchor and every point in pts.
func ComputeBounds(anchor geom.Point, pts []geom.Point) Bounds {
	b := Bounds{Top: anchor.Y, Left: anchor.X, Bottom: anchor.Y, Right: anchor.X}
	for _, p := range pts {
		if p.X < b.Left {
			b.Left = p.X
		}
		if p.X > b.Right {
			b.Right = p.X
		}
		if p.Y < b.Top {
			b.Top = p.Y
		}
		if p.Y > b.Bottom {
			b.Bottom = p.Y
		}
	}
	return b
}

// Contains reports whether p lies inside b (edges inclusive).
func (b Bounds) Contains(p geom.Point) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// Width returns Right-Left.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns Bottom-Top.
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}
