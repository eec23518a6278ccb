package control

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/frudas24/roiselect/internal/annotator"
	"github.com/frudas24/roiselect/internal/session"
	"github.com/frudas24/roiselect/internal/view"
	"github.com/frudas24/roiselect/internal/viewport"
	"github.com/gorilla/websocket"
)

// Sizer reports the drawing surface size in pixels.
type Sizer interface {
	Size() (int, int)
}

// Server handles websocket control input.
type Server struct {
	mu       sync.Mutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	ann      *annotator.Annotator
	surface  Sizer
	onFrame  func()
	saveView func(view.View) error
	conn     *websocket.Conn
}

// NewServer creates a control websocket server.
// onFrame runs after every handled message; saveView persists view changes. Both may be nil.
func NewServer(sess *session.Session, ann *annotator.Annotator, surface Sizer, onFrame func(), saveView func(view.View) error) *Server {
	return &Server{
		session:  sess,
		ann:      ann,
		surface:  surface,
		onFrame:  onFrame,
		saveView: saveView,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		_ = conn.WriteJSON(errorOut(err))
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	unsubscribe := s.ann.Subscribe(func(ev annotator.Event) {
		if err := s.send(eventOut(ev)); err != nil {
			log.Printf("control: send %s: %v", ev.Name, err)
		}
	})
	defer unsubscribe()

	ready := Out{T: OutReady, Selector: s.ann.Current(), Selectors: s.ann.Selectors()}
	if err := s.send(ready); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(msg); err != nil && !errors.Is(err, annotator.ErrGestureActive) {
			if err := s.send(errorOut(err)); err != nil {
				return
			}
		}
		s.frame()
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed and drops any armed gesture.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
	if s.ann.Cancel() {
		s.frame()
	}
}

// send writes v to the active connection, if any.
func (s *Server) send(v Out) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(v)
}

// frame asks the app to publish a preview frame.
func (s *Server) frame() {
	if s.onFrame != nil {
		s.onFrame()
	}
}

// handleMessage dispatches a single control message.
func (s *Server) handleMessage(msg Message) error {
	switch msg.T {
	case MsgDown, MsgMove, MsgUp:
		return s.handlePointer(msg)
	case MsgCancel:
		s.ann.Cancel()
		return nil
	case MsgSetSelector:
		if err := s.ann.SetCurrentSelector(msg.Selector); err != nil {
			return err
		}
		s.session.SetSelector(msg.Selector)
		return nil
	case MsgSetView:
		return s.handleSetView(msg)
	case MsgInputEnabled:
		if msg.Enabled != nil {
			s.session.SetInputEnabled(*msg.Enabled)
			if !*msg.Enabled {
				s.ann.Cancel()
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.T)
	}
}

// handlePointer maps normalized coordinates to surface pixels and forwards the event.
func (s *Server) handlePointer(msg Message) error {
	if !s.session.InputEnabled() {
		return nil
	}
	w, h := s.surface.Size()
	p := viewport.NormToViewport(msg.X, msg.Y, w, h)
	switch msg.T {
	case MsgDown:
		return s.ann.PointerDown(msg.ID, p)
	case MsgMove:
		s.ann.PointerMove(msg.ID, p)
	case MsgUp:
		s.ann.PointerUp(msg.ID, p)
	}
	return nil
}

// handleSetView applies the fields present in msg to the current view.
// With fit set, zoom and pan are recomputed to centre the item on the surface.
func (s *Server) handleSetView(msg Message) error {
	v := s.session.View()
	if msg.Width != nil {
		v.Width = *msg.Width
	}
	if msg.Height != nil {
		v.Height = *msg.Height
	}
	if msg.Zoom != nil {
		v.Zoom = *msg.Zoom
	}
	if msg.PanX != nil {
		v.PanX = *msg.PanX
	}
	if msg.PanY != nil {
		v.PanY = *msg.PanY
	}
	if msg.Fit {
		w, h := s.surface.Size()
		v = view.Fit(v, w, h)
	}
	s.session.SetView(v)
	v = s.session.View()
	s.ann.SetTransform(v.Transform())
	if s.saveView != nil {
		if err := s.saveView(v); err != nil {
			return fmt.Errorf("save view: %w", err)
		}
	}
	return nil
}
