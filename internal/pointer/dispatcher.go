// Package pointer routes pointer events from the drawing surface to gesture listeners.
package pointer

import (
	"sort"
	"sync"

	"github.com/frudas24/roiselect/internal/geom"
)

// Kind identifies a pointer event type.
type Kind string

const (
	// Move is a pointer move over the surface.
	Move Kind = "move"
	// Up is a pointer release over the surface.
	Up Kind = "up"
)

// Handle identifies a registered listener. Zero is never issued.
type Handle uint64

type listener struct {
	kind Kind
	fn   func(geom.Point)
}

// Dispatcher is the listener registry of a drawing surface.
type Dispatcher struct {
	mu        sync.Mutex
	next      Handle
	listeners map[Handle]listener
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Handle]listener)}
}

// Listen registers fn for kind and returns its handle.
func (d *Dispatcher) Listen(kind Kind, fn func(geom.Point)) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listeners == nil {
		d.listeners = make(map[Handle]listener)
	}
	d.next++
	d.listeners[d.next] = listener{kind: kind, fn: fn}
	return d.next
}

// Unlisten removes the listener behind h. It reports whether one was registered.
func (d *Dispatcher) Unlisten(h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.listeners[h]; !ok {
		return false
	}
	delete(d.listeners, h)
	return true
}

// Dispatch calls every listener registered for kind in registration order.
// Listeners removed by an earlier listener in the same dispatch are skipped.
func (d *Dispatcher) Dispatch(kind Kind, p geom.Point) {
	for _, h := range d.handles(kind) {
		d.mu.Lock()
		l, ok := d.listeners[h]
		d.mu.Unlock()
		if ok {
			l.fn(p)
		}
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// handles snapshots the handles registered for kind.
func (d *Dispatcher) handles(kind Kind) []Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Handle, 0, len(d.listeners))
	for h, l := range d.listeners {
		if l.kind == kind {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
