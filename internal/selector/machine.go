package selector

import (
	"errors"
	"fmt"

	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/pointer"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
	"github.com/frudas24/roiselect/internal/viewport"
)

// State is the lifecycle state of a gesture.
type State int

const (
	// StateIdle means no gesture is live.
	StateIdle State = iota
	// StateArmed means pointer events are being captured.
	StateArmed
	// StateCompleted means the last gesture produced a shape.
	StateCompleted
	// StateCanceled means the last gesture ended without a valid shape.
	StateCanceled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateCompleted:
		return "completed"
	case StateCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Machine runs one gesture at a time for a capture policy.
// It is not safe for concurrent use; the host serializes pointer events.
type Machine struct {
	deps   Deps
	policy policy
	state  State
	moveH  pointer.Handle
	upH    pointer.Handle
	err    error
}

var _ Selector = (*Machine)(nil)

// newMachine validates deps and binds them to p.
func newMachine(d Deps, p policy) (*Machine, error) {
	if d.Host == nil {
		return nil, errors.New("host is required")
	}
	if d.Surface == nil {
		return nil, errors.New("surface is required")
	}
	if d.Events == nil {
		return nil, errors.New("event source is required")
	}
	if d.Style == (style.Style{}) {
		d.Style = style.Default()
	}
	return &Machine{deps: d, policy: p}, nil
}

// Name returns the selector name.
func (m *Machine) Name() string {
	return m.policy.name()
}

// SupportedShapeType returns the shape kind the selector is registered for.
func (m *Machine) SupportedShapeType() shape.Kind {
	return m.policy.kind()
}

// State returns the current gesture state.
func (m *Machine) State() State {
	return m.state
}

// Err returns the preview rendering error of the last pointer event, if any.
func (m *Machine) Err() error {
	return m.err
}

// StartSelection arms a gesture anchored at (x, y).
func (m *Machine) StartSelection(x, y float64) error {
	if m.state != StateIdle {
		return fmt.Errorf("%w: %s is %s", ErrNotIdle, m.Name(), m.state)
	}
	m.policy.reset(geom.Pt(x, y))
	m.err = nil
	m.attach()
	m.state = StateArmed
	m.deps.Host.FireEvent(EventStarted, Started{OffsetX: x, OffsetY: y})
	return nil
}

// StopSelection releases listeners, clears the preview and forgets captured points.
// It is safe in any state and emits nothing.
func (m *Machine) StopSelection() {
	m.detach()
	m.deps.Surface.Clear()
	m.policy.clear()
	m.state = StateIdle
}

// Shape returns the committed shape in item space, or false when none can be derived.
func (m *Machine) Shape() (shape.Shape, bool) {
	return m.policy.shape(m.deps.Host.ToItemCoordinates)
}

// ViewportBounds returns the box over every captured point, in viewport pixels.
func (m *Machine) ViewportBounds() viewport.Bounds {
	return m.policy.bounds()
}

// DrawShape renders a committed shape given in viewport space.
func (m *Machine) DrawShape(s surface.Surface, sh shape.Shape, highlight bool) error {
	return m.policy.draw(s, sh, m.deps.Style, highlight)
}

// attach registers the move and up listeners, dropping any left over.
func (m *Machine) attach() {
	m.detach()
	m.moveH = m.deps.Events.Listen(pointer.Move, m.onMove)
	m.upH = m.deps.Events.Listen(pointer.Up, m.onUp)
}

// detach unregisters exactly the handles attach stored.
func (m *Machine) detach() {
	if m.moveH != 0 {
		m.deps.Events.Unlisten(m.moveH)
		m.moveH = 0
	}
	if m.upH != 0 {
		m.deps.Events.Unlisten(m.upH)
		m.upH = 0
	}
}

// onMove tracks the pointer and redraws the preview.
func (m *Machine) onMove(p geom.Point) {
	if m.state != StateArmed {
		return
	}
	m.err = nil
	m.policy.track(p)
	m.redraw()
}

// onUp advances or finalizes the gesture.
func (m *Machine) onUp(p geom.Point) {
	if m.state != StateArmed {
		return
	}
	m.err = nil
	if !m.policy.release(p) {
		m.redraw()
		return
	}

	m.detach()
	m.deps.Surface.Clear()
	bounds := m.policy.bounds()
	sh, ok := m.Shape()
	if !ok {
		m.state = StateCanceled
		m.deps.Host.FireEvent(EventCanceled, Canceled{})
		return
	}
	m.state = StateCompleted
	m.deps.Host.FireEvent(EventCompleted, Completed{Shape: sh, ViewportBounds: bounds})
}

// redraw clears the surface and draws the policy preview.
func (m *Machine) redraw() {
	m.deps.Surface.Clear()
	if err := m.policy.preview(m.deps.Surface, m.deps.Style); err != nil {
		m.err = err
	}
}
