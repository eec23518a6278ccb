// Package selector turns pointer gestures into selection shapes.
//
// Every selector is a Machine driven by a capture policy. The machine owns the gesture
// lifecycle (arm, listen, preview, finalize, stop); the policy decides when a pointer-up
// finalizes, how the preview looks and how the committed shape is derived.
package selector

import (
	"errors"

	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/pointer"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
	"github.com/frudas24/roiselect/internal/viewport"
)

// Event names fired on the host.
const (
	EventStarted   = "onSelectionStarted"
	EventCompleted = "onSelectionCompleted"
	EventCanceled  = "onSelectionCanceled"
)

// ErrNotIdle is returned by StartSelection while a gesture is still live.
var ErrNotIdle = errors.New("selector is not idle")

// Started is the payload of EventStarted.
type Started struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Completed is the payload of EventCompleted.
type Completed struct {
	Shape          shape.Shape     `json:"shape"`
	ViewportBounds viewport.Bounds `json:"viewportBounds"`
}

// Canceled is the payload of EventCanceled.
type Canceled struct{}

// Host is the annotator a selector reports to.
type Host interface {
	ToItemCoordinates(p geom.Point) geom.Point
	FireEvent(name string, payload any)
}

// EventSource delivers pointer events from the drawing surface.
type EventSource interface {
	Listen(kind pointer.Kind, fn func(geom.Point)) pointer.Handle
	Unlisten(h pointer.Handle) bool
}

// Selector is the contract every selector exposes to the host.
type Selector interface {
	Name() string
	SupportedShapeType() shape.Kind
	StartSelection(x, y float64) error
	StopSelection()
	Shape() (shape.Shape, bool)
	ViewportBounds() viewport.Bounds
	DrawShape(s surface.Surface, sh shape.Shape, highlight bool) error
	// Err reports the preview failure of the last pointer event, if any.
	Err() error
}

// Deps are the collaborators injected into a selector.
type Deps struct {
	Host    Host
	Surface surface.Surface
	Events  EventSource
	Style   style.Style
}

// policy is the variant-specific part of a selector.
type policy interface {
	name() string
	kind() shape.Kind
	// reset starts capture at anchor.
	reset(anchor geom.Point)
	// clear drops everything captured.
	clear()
	track(p geom.Point)
	// release handles a pointer-up and reports whether the gesture is finished.
	release(p geom.Point) bool
	shape(toItem func(geom.Point) geom.Point) (shape.Shape, bool)
	bounds() viewport.Bounds
	preview(s surface.Surface, st style.Style) error
	draw(s surface.Surface, sh shape.Shape, st style.Style, highlight bool) error
}
