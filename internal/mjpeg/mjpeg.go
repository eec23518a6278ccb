// Package mjpeg streams snapshots of the drawing surface to browsers as multipart JPEG.
package mjpeg

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

const boundary = "frame"

// keepAlive is how often the last frame is re-sent to idle clients.
const keepAlive = time.Second

// Stream broadcasts JPEG frames to connected HTTP clients.
type Stream struct {
	mu          sync.RWMutex
	subs        map[chan []byte]struct{}
	last        []byte
	minInterval time.Duration
	lastPush    time.Time
	now         func() time.Time
}

// NewStream creates a stream that broadcasts at most once per minInterval.
func NewStream(minInterval time.Duration) *Stream {
	return &Stream{
		subs:        make(map[chan []byte]struct{}),
		minInterval: minInterval,
		now:         time.Now,
	}
}

// SetMinInterval sets the minimum interval between broadcast frames.
func (s *Stream) SetMinInterval(d time.Duration) {
	s.mu.Lock()
	s.minInterval = d
	s.mu.Unlock()
}

// Subscribers returns the number of connected clients.
func (s *Stream) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Publish stores jpg as the latest frame and broadcasts it unless throttled.
// Throttled frames still reach clients through the keep-alive resend.
func (s *Stream) Publish(jpg []byte) {
	frame := append([]byte(nil), jpg...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = frame
	now := s.now()
	if s.minInterval > 0 && now.Sub(s.lastPush) < s.minInterval {
		return
	}
	s.lastPush = now
	for ch := range s.subs {
		offer(ch, frame)
	}
}

// Handler serves the multipart stream until the client goes away.
func (s *Stream) Handler(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Connection", "keep-alive")
	h.Set("Pragma", "no-cache")

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	tick := time.NewTicker(keepAlive)
	defer tick.Stop()

	for {
		var jpg []byte
		select {
		case <-r.Context().Done():
			return
		case jpg = <-ch:
		case <-tick.C:
			jpg = s.latest()
		}
		if len(jpg) == 0 {
			continue
		}
		if err := writePart(w, jpg); err != nil {
			return
		}
		fl.Flush()
	}
}

// latest returns a copy of the last published frame.
func (s *Stream) latest() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.last...)
}

// subscribe registers a client and primes it with the last frame.
func (s *Stream) subscribe() chan []byte {
	ch := make(chan []byte, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[ch] = struct{}{}
	if len(s.last) > 0 {
		ch <- append([]byte(nil), s.last...)
	}
	return ch
}

// unsubscribe removes a client subscription.
func (s *Stream) unsubscribe(ch chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, ch)
	close(ch)
}

// offer replaces any pending frame in ch with frame.
func offer(ch chan []byte, frame []byte) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- frame:
	default:
	}
}

// writePart writes a single JPEG frame to the multipart response.
func writePart(w http.ResponseWriter, jpg []byte) error {
	head := "\r\n--" + boundary + "\r\n" +
		"Content-Type: image/jpeg\r\n" +
		"Content-Length: " + strconv.Itoa(len(jpg)) + "\r\n\r\n"
	if _, err := w.Write([]byte(head)); err != nil {
		return err
	}
	_, err := w.Write(jpg)
	return err
}
