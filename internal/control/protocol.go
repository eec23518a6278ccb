// Package control carries pointer input from the browser to the annotator over a websocket.
package control

import "github.com/frudas24/roiselect/internal/annotator"

// Inbound message types.
const (
	MsgDown         = "down"
	MsgMove         = "move"
	MsgUp           = "up"
	MsgCancel       = "cancel"
	MsgSetSelector  = "setSelector"
	MsgSetView      = "setView"
	MsgInputEnabled = "inputEnabled"
)

// Outbound message types.
const (
	OutReady = "ready"
	OutEvent = "event"
	OutError = "error"
)

// Message is an inbound control websocket payload.
// Pointer coordinates are normalized to [0..1] over the drawing surface.
type Message struct {
	T        string   `json:"t"`
	ID       int      `json:"id,omitempty"`
	X        float64  `json:"x,omitempty"`
	Y        float64  `json:"y,omitempty"`
	Selector string   `json:"selector,omitempty"`
	Width    *int     `json:"width,omitempty"`
	Height   *int     `json:"height,omitempty"`
	Zoom     *float64 `json:"zoom,omitempty"`
	PanX     *float64 `json:"panX,omitempty"`
	PanY     *float64 `json:"panY,omitempty"`
	Enabled  *bool    `json:"enabled,omitempty"`
	Fit      bool     `json:"fit,omitempty"`
}

// Out is an outbound control websocket payload.
type Out struct {
	T         string   `json:"t"`
	Name      string   `json:"name,omitempty"`
	Gesture   string   `json:"gesture,omitempty"`
	Payload   any      `json:"payload,omitempty"`
	Error     string   `json:"error,omitempty"`
	Selector  string   `json:"selector,omitempty"`
	Selectors []string `json:"selectors,omitempty"`
}

// eventOut wraps an annotator event for the wire.
func eventOut(ev annotator.Event) Out {
	return Out{T: OutEvent, Name: ev.Name, Gesture: ev.Gesture, Payload: ev.Payload}
}

// errorOut wraps a rejected command for the wire.
func errorOut(err error) Out {
	return Out{T: OutError, Error: err.Error()}
}
