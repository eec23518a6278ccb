package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/frudas24/roiselect/internal/annotator"
	"github.com/frudas24/roiselect/internal/config"
	"github.com/frudas24/roiselect/internal/session"
	"github.com/frudas24/roiselect/internal/shape"
	"github.com/frudas24/roiselect/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/selectors", a.handleSelectors)
	mux.HandleFunc("/api/shape", a.handleShape)
	mux.HandleFunc("/api/config", a.handleConfig)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)
	if stream := a.PreviewStream(); stream != nil {
		mux.HandleFunc("/mjpeg/preview", a.withAuth(stream.Handler))
	}

	mux.Handle("/", staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	Session   session.Snapshot `json:"session"`
	Annotator annotator.State  `json:"annotator"`
	Preview   bool             `json:"preview"`
}

type selectorsResponse struct {
	Selectors []string `json:"selectors"`
	Current   string   `json:"current"`
}

type shapeResponse struct {
	Shape  shape.Shape `json:"shape"`
	Bounds shape.Rect  `json:"bounds"`
}

type configRequest struct {
	MJPEGIntervalMs *int     `json:"mjpegIntervalMs,omitempty"`
	MJPEGQuality    *int     `json:"mjpegQuality,omitempty"`
	PreviewScale    *float64 `json:"previewScale,omitempty"`
	Reset           bool     `json:"reset,omitempty"`
}

type configResponse struct {
	Applied         bool    `json:"applied"`
	MJPEGIntervalMs int     `json:"mjpegIntervalMs"`
	MJPEGQuality    int     `json:"mjpegQuality"`
	PreviewScale    float64 `json:"previewScale"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	writeJSON(w, map[string]bool{"ok": true})
}

// handleState returns the session and annotator state.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	writeJSON(w, stateResponse{
		Session:   a.session.Snapshot(),
		Annotator: a.annotator.State(),
		Preview:   a.previewStream != nil,
	})
}

// handleSelectors lists the registered selectors.
func (a *App) handleSelectors(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	writeJSON(w, selectorsResponse{
		Selectors: a.annotator.Selectors(),
		Current:   a.annotator.Current(),
	})
}

// handleShape returns the last completed shape in item space.
func (a *App) handleShape(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	sh, ok := a.annotator.LastShape()
	if !ok {
		http.Error(w, "no shape", http.StatusNotFound)
		return
	}
	writeJSON(w, shapeResponse{Shape: sh, Bounds: shape.BoundingRect(sh)})
}

// handleConfig updates preview settings at runtime, or resets them to the startup values.
func (a *App) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	interval, quality, scale := a.currentPreviewSettings()
	if req.Reset {
		interval, quality, scale = a.defaultMJPEG.intervalMs, a.defaultMJPEG.quality, a.defaultMJPEG.scale
	}
	if req.MJPEGIntervalMs != nil {
		interval = *req.MJPEGIntervalMs
	}
	if req.MJPEGQuality != nil {
		quality = *req.MJPEGQuality
	}
	if req.PreviewScale != nil {
		scale = *req.PreviewScale
	}
	if interval < config.MinMJPEGIntervalMs || interval > config.MaxMJPEGIntervalMs {
		http.Error(w, fmt.Sprintf("mjpegIntervalMs must be %d-%d", config.MinMJPEGIntervalMs, config.MaxMJPEGIntervalMs), http.StatusBadRequest)
		return
	}
	if quality <= 0 || quality > 100 {
		http.Error(w, "mjpegQuality must be 1-100", http.StatusBadRequest)
		return
	}
	if scale <= 0 || scale > 4 {
		http.Error(w, "previewScale must be in (0, 4]", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	a.cfg.MJPEGIntervalMs = interval
	a.cfg.MJPEGQuality = quality
	a.cfg.PreviewScale = scale
	a.mu.Unlock()
	if a.previewStream != nil {
		a.previewStream.SetMinInterval(time.Duration(interval) * time.Millisecond)
	}
	a.PublishFrame()

	writeJSON(w, configResponse{
		Applied:         true,
		MJPEGIntervalMs: interval,
		MJPEGQuality:    quality,
		PreviewScale:    scale,
	})
}

// currentPreviewSettings returns the live preview settings.
func (a *App) currentPreviewSettings() (int, int, float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.MJPEGIntervalMs, a.cfg.MJPEGQuality, a.cfg.PreviewScale
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// withAuth wraps h with the session check.
func (a *App) withAuth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.requireAuth(w) {
			return
		}
		h(w, r)
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.Printf("static assets unavailable: %v", err)
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
