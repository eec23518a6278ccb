// Package testutil provides recording fakes for tests.
package testutil

import "github.com/frudas24/roiselect/internal/geom"

// Fired is one event captured by FakeHost.
type Fired struct {
	Name    string
	Payload any
}

// FakeHost records fired events and applies an optional coordinate transform.
type FakeHost struct {
	ToItem  func(geom.Point) geom.Point
	Events  []Fired
	OnEvent func(name string, payload any)
}

// ToItemCoordinates applies ToItem, or returns p unchanged.
func (h *FakeHost) ToItemCoordinates(p geom.Point) geom.Point {
	if h.ToItem == nil {
		return p
	}
	return h.ToItem(p)
}

// FireEvent records the event and then calls OnEvent.
func (h *FakeHost) FireEvent(name string, payload any) {
	h.Events = append(h.Events, Fired{Name: name, Payload: payload})
	if h.OnEvent != nil {
		h.OnEvent(name, payload)
	}
}

// Count returns how many events named name were fired.
func (h *FakeHost) Count(name string) int {
	n := 0
	for _, e := range h.Events {
		if e.Name == name {
			n++
		}
	}
	return n
}
