package selector

import (
	"math"

	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
	"github.com/frudas24/roiselect/internal/viewport"
)

// FancyBoxName is the registry name of the masking box selector.
const FancyBoxName = "fancybox"

// minBoxDelta is the pixel extent a box must exceed on both axes.
const minBoxDelta = 3

// NewFancyBox returns an axis-aligned box selector that dims everything outside the box while
// dragging. Boxes not larger than 3px on both axes are canceled.
func NewFancyBox(d Deps) (*Machine, error) {
	return newMachine(d, &fancyBox{})
}

// fancyBox captures two opposite corners.
type fancyBox struct {
	started     bool
	anchor      geom.Point
	opposite    geom.Point
	hasOpposite bool
}

// name returns the registry name.
func (f *fancyBox) name() string { return FancyBoxName }

// kind returns the registered shape kind.
func (f *fancyBox) kind() shape.Kind { return shape.KindRect }

// reset anchors a new box.
func (f *fancyBox) reset(anchor geom.Point) {
	*f = fancyBox{started: true, anchor: anchor}
}

// clear forgets the box.
func (f *fancyBox) clear() {
	*f = fancyBox{}
}

// track moves the opposite corner.
func (f *fancyBox) track(p geom.Point) {
	f.opposite = p
	f.hasOpposite = true
}

// release finishes on the first pointer-up.
func (f *fancyBox) release(p geom.Point) bool {
	f.track(p)
	return true
}

// shape returns the box in item space, or false when it is too small.
func (f *fancyBox) shape(toItem func(geom.Point) geom.Point) (shape.Shape, bool) {
	if !f.started || !f.hasOpposite {
		return shape.Shape{}, false
	}
	if math.Abs(f.opposite.X-f.anchor.X) <= minBoxDelta || math.Abs(f.opposite.Y-f.anchor.Y) <= minBoxDelta {
		return shape.Shape{}, false
	}
	b := f.bounds()
	topLeft := toItem(geom.Pt(b.Left, b.Top))
	bottomRight := toItem(geom.Pt(b.Right-1, b.Bottom-1))
	return shape.NewRect(shape.Rect{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  bottomRight.X - topLeft.X,
		Height: bottomRight.Y - topLeft.Y,
	}), true
}

// bounds covers the anchor and the opposite corner.
func (f *fancyBox) bounds() viewport.Bounds {
	if !f.hasOpposite {
		return viewport.ComputeBounds(f.anchor, nil)
	}
	return viewport.ComputeBounds(f.anchor, []geom.Point{f.opposite})
}

// preview masks the four bands around the box and outlines it.
func (f *fancyBox) preview(s surface.Surface, st style.Style) error {
	if !f.hasOpposite {
		return nil
	}
	w, h := s.Size()
	fw, fh := float64(w), float64(h)
	b := f.bounds()

	s.SetFill(st.Mask)
	s.Rect(0, 0, fw, b.Top)
	s.Rect(b.Right, b.Top, fw-b.Right, b.Height())
	s.Rect(0, b.Bottom, fw, fh-b.Bottom)
	s.Rect(0, b.Top, b.Left, b.Height())
	if err := s.Fill(); err != nil {
		return err
	}

	s.SetStroke(st.Outer.Color, 1)
	s.Rect(b.Left+0.5, b.Top+0.5, b.Width(), b.Height())
	return s.Stroke()
}

// draw outlines a committed rectangle.
func (f *fancyBox) draw(s surface.Surface, sh shape.Shape, st style.Style, highlight bool) error {
	if sh.Type != shape.KindRect {
		return nil
	}
	width := 1.0
	if highlight {
		width = 1.2
	}
	r := sh.Rect
	s.SetStroke(st.Outer.Color, width)
	s.Rect(r.X+0.5, r.Y+0.5, r.Width+1, r.Height+1)
	if err := s.Stroke(); err != nil {
		return err
	}
	s.SetStroke(st.InnerColor(highlight), width)
	s.Rect(r.X+1.5, r.Y+1.5, r.Width-1, r.Height-1)
	return s.Stroke()
}
