package surface

import (
	"image/color"
	"testing"

	"github.com/frudas24/roiselect/internal/style"
)

// alphaAt returns the 16-bit alpha at (x, y).
func alphaAt(c *Canvas, x, y int) uint32 {
	_, _, _, a := c.Image().At(x, y).RGBA()
	return a
}

// TestCanvas_FillAndClear verifies filled pixels appear and Clear removes them.
func TestCanvas_FillAndClear(t *testing.T) {
	c := NewCanvas(20, 20)
	if w, h := c.Size(); w != 20 || h != 20 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}

	c.SetFill(style.MustParseColor("#ff0000"))
	c.Rect(4, 4, 12, 12)
	if err := c.Fill(); err != nil {
		t.Fatalf("fill failed: %v", err)
	}
	if alphaAt(c, 10, 10) == 0 {
		t.Fatalf("expected filled pixel inside the rect")
	}
	if alphaAt(c, 1, 1) != 0 {
		t.Fatalf("expected transparent pixel outside the rect")
	}

	c.Clear()
	if alphaAt(c, 10, 10) != 0 {
		t.Fatalf("expected transparent pixel after clear")
	}
}

// TestCanvas_StrokeUsesStrokeColor verifies a stroked line lands on the canvas.
func TestCanvas_StrokeUsesStrokeColor(t *testing.T) {
	c := NewCanvas(20, 20)
	c.SetStroke(style.MustParseColor("#0000ff"), 4)
	c.MoveTo(0, 10)
	c.LineTo(20, 10)
	if err := c.Stroke(); err != nil {
		t.Fatalf("stroke failed: %v", err)
	}
	px := color.RGBAModel.Convert(c.Image().At(10, 10)).(color.RGBA)
	if px.A == 0 || px.B == 0 || px.R != 0 {
		t.Fatalf("expected a blue pixel on the line, got %+v", px)
	}
}

// TestCanvas_Resize verifies resizing changes the reported size.
func TestCanvas_Resize(t *testing.T) {
	c := NewCanvas(10, 10)
	if err := c.Resize(30, 15); err != nil {
		t.Fatalf("resize failed: %v", err)
	}
	if w, h := c.Size(); w != 30 || h != 15 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	if err := c.Resize(0, 5); err == nil {
		t.Fatalf("expected error for zero width")
	}
}
