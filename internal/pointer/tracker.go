package pointer

import (
	"math"
	"time"

	"github.com/frudas24/roiselect/internal/geom"
)

// Tracker follows the single pointer that owns the current drag.
// Other pointers are ignored while a drag is active.
type Tracker struct {
	active     bool
	pointer    int
	lastMoveAt time.Time
	last       geom.Point
	minDelta   float64
	minGap     time.Duration
	now        func() time.Time
}

// NewTracker returns a tracker with move throttling disabled.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// SetNowFunc overrides the clock used for throttling.
func (t *Tracker) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		t.now = fn
	}
}

// SetThrottle drops moves closer than gap in time and delta in distance to the last one kept.
// Zero values disable the respective check.
func (t *Tracker) SetThrottle(gap time.Duration, delta float64) {
	t.minGap = gap
	t.minDelta = delta
}

// Active reports whether a drag is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Down claims the drag for pointerID. It returns false when another pointer already owns it.
func (t *Tracker) Down(pointerID int, p geom.Point) bool {
	if t.active && t.pointer != pointerID {
		return false
	}
	t.active = true
	t.pointer = pointerID
	t.lastMoveAt = t.now()
	t.last = p
	return true
}

// Move reports whether a move from pointerID should be forwarded.
// Moves with no active drag are forwarded too: multi-phase gestures track the pointer between
// presses.
func (t *Tracker) Move(pointerID int, p geom.Point) bool {
	if t.active && t.pointer != pointerID {
		return false
	}
	if t.minGap > 0 || t.minDelta > 0 {
		now := t.now()
		if t.minGap > 0 && !t.lastMoveAt.IsZero() && now.Sub(t.lastMoveAt) < t.minGap {
			return false
		}
		if t.minDelta > 0 && math.Abs(p.X-t.last.X) < t.minDelta && math.Abs(p.Y-t.last.Y) < t.minDelta {
			return false
		}
		t.lastMoveAt = now
	}
	t.last = p
	return true
}

// Up releases the drag. It returns false for a pointer that does not own the drag.
func (t *Tracker) Up(pointerID int) bool {
	if t.active && t.pointer != pointerID {
		return false
	}
	t.active = false
	return true
}

// Reset forgets the current drag.
func (t *Tracker) Reset() {
	t.active = false
	t.lastMoveAt = time.Time{}
}
