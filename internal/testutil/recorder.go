package testutil

import (
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
)

// Call records a single drawing call.
type Call struct {
	Name  string
	X     float64
	Y     float64
	W     float64
	H     float64
	Color string
	Width float64
}

// Recorder implements surface.Surface and records calls for tests.
type Recorder struct {
	W, H  int
	Calls []Call
	// FailWith, when set, is returned by Stroke and Fill.
	FailWith error
}

// Ensure Recorder implements the interface.
var _ surface.Surface = (*Recorder)(nil)

// NewRecorder returns a recorder reporting a w×h size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

// Size returns the configured size.
func (r *Recorder) Size() (int, int) {
	return r.W, r.H
}

// Clear records a clear.
func (r *Recorder) Clear() {
	r.Calls = append(r.Calls, Call{Name: "Clear"})
}

// SetStroke records a stroke style change.
func (r *Recorder) SetStroke(c style.Color, width float64) {
	r.Calls = append(r.Calls, Call{Name: "SetStroke", Color: c.Hex(), Width: width})
}

// SetFill records a fill style change.
func (r *Recorder) SetFill(c style.Color) {
	r.Calls = append(r.Calls, Call{Name: "SetFill", Color: c.Hex()})
}

// MoveTo records a move.
func (r *Recorder) MoveTo(x, y float64) {
	r.Calls = append(r.Calls, Call{Name: "MoveTo", X: x, Y: y})
}

// LineTo records a line.
func (r *Recorder) LineTo(x, y float64) {
	r.Calls = append(r.Calls, Call{Name: "LineTo", X: x, Y: y})
}

// ClosePath records a path close.
func (r *Recorder) ClosePath() {
	r.Calls = append(r.Calls, Call{Name: "ClosePath"})
}

// Arc records an arc by its centre and radius.
func (r *Recorder) Arc(x, y, radius, _, _ float64) {
	r.Calls = append(r.Calls, Call{Name: "Arc", X: x, Y: y, W: radius})
}

// Rect records a rectangle.
func (r *Recorder) Rect(x, y, w, h float64) {
	r.Calls = append(r.Calls, Call{Name: "Rect", X: x, Y: y, W: w, H: h})
}

// Stroke records a stroke.
func (r *Recorder) Stroke() error {
	r.Calls = append(r.Calls, Call{Name: "Stroke"})
	return r.FailWith
}

// Fill records a fill.
func (r *Recorder) Fill() error {
	r.Calls = append(r.Calls, Call{Name: "Fill"})
	return r.FailWith
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the last recorded call, or a zero Call.
func (r *Recorder) Last() Call {
	if len(r.Calls) == 0 {
		return Call{}
	}
	return r.Calls[len(r.Calls)-1]
}

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.Calls = nil
}
