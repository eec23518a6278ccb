package shape

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/frudas24/roiselect/internal/geom"
)

// TestMarshal_Rect verifies the rect wire format.
func TestMarshal_Rect(t *testing.T) {
	data, err := json.Marshal(NewRect(Rect{X: 10, Y: 10, Width: 9, Height: 14}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"type":"rect","geometry":{"x":10,"y":10,"width":9,"height":14}}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

// TestMarshal_Polygon verifies the point-list wire format.
func TestMarshal_Polygon(t *testing.T) {
	data, err := json.Marshal(NewPolygon([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2)}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"type":"polygon","geometry":{"points":[{"x":0,"y":0},{"x":1,"y":1},{"x":2,"y":2}]}}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

// TestMarshal_EmptyPolygon verifies an empty trace encodes an empty list, not null.
func TestMarshal_EmptyPolygon(t *testing.T) {
	data, err := json.Marshal(Shape{Type: KindPolygon})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"points":[]`) {
		t.Fatalf("expected empty points list, got %s", data)
	}
}

// TestUnmarshal_LineString verifies decoding a linestring payload.
func TestUnmarshal_LineString(t *testing.T) {
	var s Shape
	payload := `{"type":"linestring","geometry":{"points":[{"x":1,"y":2},{"x":3,"y":4}]}}`
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s.Type != KindLineString || len(s.Points) != 2 || s.Points[1] != geom.Pt(3, 4) {
		t.Fatalf("unexpected shape %+v", s)
	}
}

// TestUnmarshal_UnknownType verifies unknown types are rejected.
func TestUnmarshal_UnknownType(t *testing.T) {
	var s Shape
	if err := json.Unmarshal([]byte(`{"type":"ellipse","geometry":{}}`), &s); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

// TestNewPolygon_CopiesInput verifies later edits to the source slice do not leak in.
func TestNewPolygon_CopiesInput(t *testing.T) {
	src := []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2)}
	s := NewPolygon(src)
	src[0] = geom.Pt(99, 99)
	if s.Points[0] != geom.Pt(1, 1) {
		t.Fatalf("shape shares storage with its input")
	}
}

// TestMap_RectRenormalizes verifies a flipping transform still yields a positive rect.
func TestMap_RectRenormalizes(t *testing.T) {
	s := NewRect(Rect{X: 1, Y: 2, Width: 3, Height: 4})
	got := Map(s, func(p geom.Point) geom.Point { return geom.Pt(-p.X, p.Y*2) })
	want := Rect{X: -4, Y: 4, Width: 3, Height: 8}
	if got.Rect != want {
		t.Fatalf("expected %+v, got %+v", want, got.Rect)
	}
}

// TestBoundingRect_Points verifies the box over a point run.
func TestBoundingRect_Points(t *testing.T) {
	s := NewPolygon([]geom.Point{geom.Pt(3, -1), geom.Pt(-2, 5), geom.Pt(0, 0)})
	want := Rect{X: -2, Y: -1, Width: 5, Height: 6}
	if got := BoundingRect(s); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got := BoundingRect(Shape{Type: KindPolygon}); got != (Rect{}) {
		t.Fatalf("expected zero rect, got %+v", got)
	}
}

// TestExpand_Rect verifies rect growth on every side.
func TestExpand_Rect(t *testing.T) {
	got := Expand(NewRect(Rect{X: 10, Y: 10, Width: 4, Height: 6}), 1)
	want := Rect{X: 9, Y: 9, Width: 6, Height: 8}
	if got.Rect != want {
		t.Fatalf("expected %+v, got %+v", want, got.Rect)
	}
}

// TestExpand_PolygonBothWindings verifies a square grows outward regardless of winding.
func TestExpand_PolygonBothWindings(t *testing.T) {
	ring := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}
	want := []geom.Point{geom.Pt(-1, -1), geom.Pt(11, -1), geom.Pt(11, 11), geom.Pt(-1, 11)}
	check := func(got []geom.Point, want []geom.Point) {
		t.Helper()
		for i := range want {
			if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
				t.Fatalf("vertex %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	}
	check(Expand(NewPolygon(ring), 1).Points, want)

	reversed := []geom.Point{ring[3], ring[2], ring[1], ring[0]}
	wantReversed := []geom.Point{want[3], want[2], want[1], want[0]}
	check(Expand(NewPolygon(reversed), 1).Points, wantReversed)
}

// TestExpand_ShortRunUnchanged verifies runs under three points are copied as-is.
func TestExpand_ShortRunUnchanged(t *testing.T) {
	s := Shape{Type: KindLineString, Points: []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2)}}
	got := Expand(s, 5)
	if len(got.Points) != 2 || got.Points[0] != geom.Pt(1, 1) {
		t.Fatalf("unexpected expansion %+v", got)
	}
}
