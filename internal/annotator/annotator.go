// Package annotator hosts the selectors on a drawing surface and routes pointer input to them.
package annotator

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/frudas24/roiselect/internal/geom"
	"github.com/frudas24/roiselect/internal/pointer"
	"github.com/frudas24/roiselect/internal/selector"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
	"github.com/frudas24/roiselect/internal/viewport"
	"github.com/google/uuid"
)

var (
	// ErrGestureActive is returned by PointerDown while a gesture is already armed.
	ErrGestureActive = errors.New("gesture already active")
	// ErrUnknownSelector is returned when a selector name is not registered.
	ErrUnknownSelector = errors.New("unknown selector")
)

// Event is a selector event tagged with the gesture that produced it.
type Event struct {
	Name    string `json:"name"`
	Gesture string `json:"gesture"`
	Payload any    `json:"payload"`
}

// State is a point-in-time view of the annotator.
type State struct {
	Selector string `json:"selector"`
	Armed    bool   `json:"armed"`
	Gesture  string `json:"gesture,omitempty"`
	HasShape bool   `json:"hasShape"`
}

// Annotator owns the surface, the pointer plumbing and the registered selectors.
// Public methods are safe for concurrent use. Subscribers run after the lock is released.
type Annotator struct {
	mu        sync.Mutex
	surface   surface.Surface
	events    *pointer.Dispatcher
	tracker   *pointer.Tracker
	transform viewport.Transform

	selectors map[string]selector.Selector
	order     []string
	current   string

	armed   bool
	gesture string
	newID   func() string

	last    shape.Shape
	lastBy  string
	hasLast bool
	pending []Event
	subs    map[int]func(Event)
	nextSub int
}

var _ selector.Host = (*Annotator)(nil)

// New returns an annotator drawing on s with an identity transform.
func New(s surface.Surface) *Annotator {
	return &Annotator{
		surface:   s,
		events:    pointer.NewDispatcher(),
		tracker:   pointer.NewTracker(),
		transform: viewport.Identity(),
		selectors: make(map[string]selector.Selector),
		newID:     uuid.NewString,
		subs:      make(map[int]func(Event)),
	}
}

// Deps returns the collaborators a selector needs to run on this annotator.
func (a *Annotator) Deps(st style.Style) selector.Deps {
	return selector.Deps{Host: a, Surface: a.surface, Events: a.events, Style: st}
}

// RegisterDefaults registers the stock selectors and makes def current.
// An empty def selects the masking box.
func (a *Annotator) RegisterDefaults(st style.Style, def string) error {
	ctors := []func(selector.Deps) (*selector.Machine, error){
		selector.NewFancyBox,
		selector.NewDirectedRect,
		selector.NewFreehand,
	}
	for _, ctor := range ctors {
		sel, err := ctor(a.Deps(st))
		if err != nil {
			return err
		}
		a.AddSelector(sel)
	}
	if def == "" {
		def = selector.FancyBoxName
	}
	return a.SetCurrentSelector(def)
}

// AddSelector registers sel under name, or under sel.Name() when no name is given.
// The first selector added becomes current.
func (a *Annotator) AddSelector(sel selector.Selector, name ...string) {
	key := sel.Name()
	if len(name) > 0 && name[0] != "" {
		key = name[0]
	}

	a.mu.Lock()
	defer a.unlock()
	if _, ok := a.selectors[key]; !ok {
		a.order = append(a.order, key)
	}
	a.selectors[key] = sel
	if a.current == "" {
		a.current = key
	}
}

// SetCurrentSelector switches the selector used by the next gesture.
// An armed gesture of the previous selector is stopped.
func (a *Annotator) SetCurrentSelector(name string) error {
	a.mu.Lock()
	defer a.unlock()
	if _, ok := a.selectors[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSelector, name)
	}
	if name == a.current {
		return nil
	}
	a.cancelLocked()
	a.current = name
	return nil
}

// Selectors returns the registered names in registration order.
func (a *Annotator) Selectors() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Current returns the name of the current selector.
func (a *Annotator) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// State returns a snapshot of the annotator.
func (a *Annotator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := State{Selector: a.current, Armed: a.armed, HasShape: a.hasLast}
	if a.armed {
		st.Gesture = a.gesture
	}
	return st
}

// LastShape returns the last completed shape in item space.
func (a *Annotator) LastShape() (shape.Shape, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last, a.hasLast
}

// SetTransform replaces the item transform and redraws the committed shape.
func (a *Annotator) SetTransform(t viewport.Transform) {
	a.mu.Lock()
	defer a.unlock()
	a.transform = t
	if !a.armed {
		a.surface.Clear()
		a.drawLast()
	}
}

// SetMoveThrottle drops pointer moves closer than gap to the previous forwarded move.
func (a *Annotator) SetMoveThrottle(gap time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker.SetThrottle(gap, 0)
}

// Subscribe registers fn for every selector event and returns a func that removes it.
func (a *Annotator) Subscribe(fn func(Event)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextSub++
	id := a.nextSub
	a.subs[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, id)
	}
}

// PointerDown starts the current selector at p unless a gesture is already armed.
// Presses that continue a multi-phase gesture report ErrGestureActive and are otherwise harmless.
func (a *Annotator) PointerDown(id int, p geom.Point) error {
	a.mu.Lock()
	defer a.unlock()
	if !a.tracker.Down(id, p) {
		return ErrGestureActive
	}
	if a.armed {
		return ErrGestureActive
	}
	sel, ok := a.selectors[a.current]
	if !ok {
		a.tracker.Reset()
		return fmt.Errorf("%w: %q", ErrUnknownSelector, a.current)
	}
	a.armed = true
	if err := sel.StartSelection(p.X, p.Y); err != nil {
		a.armed = false
		a.tracker.Reset()
		return err
	}
	return nil
}

// PointerMove forwards a move to the armed selector.
func (a *Annotator) PointerMove(id int, p geom.Point) {
	a.mu.Lock()
	defer a.unlock()
	if !a.tracker.Move(id, p) {
		return
	}
	sel := a.selectors[a.current]
	a.events.Dispatch(pointer.Move, p)
	a.reportPreview(sel)
}

// PointerUp forwards a release to the armed selector.
func (a *Annotator) PointerUp(id int, p geom.Point) {
	a.mu.Lock()
	defer a.unlock()
	if !a.tracker.Up(id) {
		return
	}
	sel := a.selectors[a.current]
	a.events.Dispatch(pointer.Up, p)
	a.reportPreview(sel)
}

// reportPreview logs a preview the selector failed to render.
func (a *Annotator) reportPreview(sel selector.Selector) {
	if sel == nil {
		return
	}
	if err := sel.Err(); err != nil {
		log.Printf("annotator: %s preview: %v", sel.Name(), err)
	}
}

// Cancel stops an armed gesture. It reports whether one was stopped.
func (a *Annotator) Cancel() bool {
	a.mu.Lock()
	defer a.unlock()
	return a.cancelLocked()
}

// ToItemCoordinates maps a viewport point into item space.
// Selectors call it while the annotator lock is held.
func (a *Annotator) ToItemCoordinates(p geom.Point) geom.Point {
	return a.transform.ToItem(p)
}

// FireEvent receives selector events. Selectors call it while the annotator lock is held;
// subscribers are notified once the triggering call returns.
func (a *Annotator) FireEvent(name string, payload any) {
	switch name {
	case selector.EventStarted:
		a.gesture = a.newID()
	case selector.EventCompleted:
		if done, ok := payload.(selector.Completed); ok {
			a.last = done.Shape
			a.lastBy = a.current
			a.hasLast = true
		}
		a.finish()
	case selector.EventCanceled:
		a.finish()
	}
	a.pending = append(a.pending, Event{Name: name, Gesture: a.gesture, Payload: payload})
}

// finish returns the current selector to idle and redraws the committed shape.
func (a *Annotator) finish() {
	if sel, ok := a.selectors[a.current]; ok {
		sel.StopSelection()
	}
	a.armed = false
	a.drawLast()
}

// cancelLocked stops the armed selector without firing an event.
func (a *Annotator) cancelLocked() bool {
	a.tracker.Reset()
	if !a.armed {
		return false
	}
	if sel, ok := a.selectors[a.current]; ok {
		sel.StopSelection()
	}
	a.armed = false
	a.gesture = ""
	a.drawLast()
	return true
}

// drawLast renders the committed shape in viewport space with the selector that produced it.
func (a *Annotator) drawLast() {
	if !a.hasLast {
		return
	}
	sel, ok := a.selectors[a.lastBy]
	if !ok {
		return
	}
	vp := shape.Map(a.last, a.transform.ToViewport)
	if err := sel.DrawShape(a.surface, vp, false); err != nil {
		log.Printf("annotator: draw %s shape: %v", a.lastBy, err)
	}
}

// unlock releases the lock and delivers queued events.
func (a *Annotator) unlock() {
	events := a.pending
	a.pending = nil
	var subs []func(Event)
	if len(events) > 0 {
		subs = make([]func(Event), 0, len(a.subs))
		for i := 1; i <= a.nextSub; i++ {
			if fn, ok := a.subs[i]; ok {
				subs = append(subs, fn)
			}
		}
	}
	a.mu.Unlock()
	for _, ev := range events {
		for _, fn := range subs {
			fn(ev)
		}
	}
}
