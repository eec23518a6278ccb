// Package shape defines the committed selection shapes and their wire format.
package shape

import (
	"encoding/json"
	"fmt"

	"github.com/frudas24/roiselect/internal/geom"
)

// Kind identifies the geometry carried by a Shape.
type Kind string

const (
	// KindRect is an axis-aligned rectangle.
	KindRect Kind = "rect"
	// KindPolygon is a closed ring of points.
	KindPolygon Kind = "polygon"
	// KindLineString is an open run of points.
	KindLineString Kind = "linestring"
)

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shape is a tagged rect/polygon/linestring. Constructors copy their input, so a Shape never
// shares backing storage with the gesture that produced it.
type Shape struct {
	Type   Kind
	Rect   Rect
	Points []geom.Point
}

// NewRect returns a rect shape.
func NewRect(r Rect) Shape {
	return Shape{Type: KindRect, Rect: r}
}

// NewPolygon returns a polygon shape over a copy of pts.
func NewPolygon(pts []geom.Point) Shape {
	return Shape{Type: KindPolygon, Points: clonePoints(pts)}
}

type wireShape struct {
	Type     Kind            `json:"type"`
	Geometry json.RawMessage `json:"geometry"`
}

type wirePoints struct {
	Points []geom.Point `json:"points"`
}

// MarshalJSON encodes {type, geometry}.
func (s Shape) MarshalJSON() ([]byte, error) {
	var (
		geometry []byte
		err      error
	)
	switch s.Type {
	case KindRect:
		geometry, err = json.Marshal(s.Rect)
	case KindPolygon, KindLineString:
		pts := s.Points
		if pts == nil {
			pts = []geom.Point{}
		}
		geometry, err = json.Marshal(wirePoints{Points: pts})
	default:
		return nil, fmt.Errorf("unknown shape type %q", s.Type)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireShape{Type: s.Type, Geometry: geometry})
}

// UnmarshalJSON decodes {type, geometry}.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var w wireShape
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case KindRect:
		var r Rect
		if err := json.Unmarshal(w.Geometry, &r); err != nil {
			return fmt.Errorf("rect geometry: %w", err)
		}
		*s = NewRect(r)
	case KindPolygon, KindLineString:
		var p wirePoints
		if err := json.Unmarshal(w.Geometry, &p); err != nil {
			return fmt.Errorf("%s geometry: %w", w.Type, err)
		}
		*s = Shape{Type: w.Type, Points: p.Points}
	default:
		return fmt.Errorf("unknown shape type %q", w.Type)
	}
	return nil
}

// clonePoints copies pts, keeping nil as nil.
func clonePoints(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	copy(out, pts)
	return out
}
