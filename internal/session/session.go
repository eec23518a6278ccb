// Package session holds runtime state for the active annotator client.
package session

import (
	"crypto/subtle"
	"sync"

	"github.com/frudas24/roiselect/internal/view"
)

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool      `json:"authenticated"`
	InputEnabled  bool      `json:"inputEnabled"`
	Selector      string    `json:"selector"`
	View          view.View `json:"view"`
}

// Session holds runtime state for the active client.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	inputEnabled  bool
	selector      string
	view          view.View
}

// New returns an initialized session with the given password.
func New(password string) *Session {
	return &Session{
		password:     password,
		inputEnabled: true,
		view:         view.Normalize(view.View{}),
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && subtle.ConstantTimeCompare([]byte(pass), []byte(s.password)) == 1 {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetInputEnabled toggles whether pointer input reaches the annotator.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether pointer input reaches the annotator.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// SetSelector records the selector chosen by the client.
func (s *Session) SetSelector(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selector = name
}

// Selector returns the selector chosen by the client.
func (s *Session) Selector() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selector
}

// SetView stores the normalized view.
func (s *Session) SetView(v view.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view.Normalize(v)
}

// View returns the current view.
func (s *Session) View() view.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.authenticated,
		InputEnabled:  s.inputEnabled,
		Selector:      s.selector,
		View:          s.view,
	}
}
