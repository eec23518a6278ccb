// Package app wires the HTTP API, the control websocket and the preview stream together.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/frudas24/roiselect/internal/annotator"
	"github.com/frudas24/roiselect/internal/config"
	"github.com/frudas24/roiselect/internal/control"
	"github.com/frudas24/roiselect/internal/mjpeg"
	"github.com/frudas24/roiselect/internal/session"
	"github.com/frudas24/roiselect/internal/style"
	"github.com/frudas24/roiselect/internal/surface"
	"github.com/frudas24/roiselect/internal/view"
)

// previewBackground is painted under the transparent overlay in preview frames.
var previewBackground = color.RGBA{R: 0x20, G: 0x22, B: 0x26, A: 0xff}

// mjpegDefaults are the preview settings captured at startup, used by a config reset.
type mjpegDefaults struct {
	intervalMs int
	quality    int
	scale      float64
}

// App coordinates the HTTP API, the control websocket and the preview stream.
type App struct {
	mu            sync.Mutex
	cfg           config.Config
	defaultMJPEG  mjpegDefaults
	session       *session.Session
	canvas        *surface.Canvas
	annotator     *annotator.Annotator
	control       *control.Server
	previewStream *mjpeg.Stream
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, st style.Style) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if cfg.SurfaceWidth <= 0 || cfg.SurfaceHeight <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", cfg.SurfaceWidth, cfg.SurfaceHeight)
	}

	canvas := surface.NewCanvas(cfg.SurfaceWidth, cfg.SurfaceHeight)
	ann := annotator.New(canvas)
	if err := ann.RegisterDefaults(st, cfg.DefaultSelector); err != nil {
		return nil, err
	}
	ann.SetMoveThrottle(time.Duration(cfg.PointerMinMoveMs) * time.Millisecond)
	sess.SetSelector(ann.Current())

	app := &App{
		cfg: cfg,
		defaultMJPEG: mjpegDefaults{
			intervalMs: cfg.MJPEGIntervalMs,
			quality:    cfg.MJPEGQuality,
			scale:      cfg.PreviewScale,
		},
		session:   sess,
		canvas:    canvas,
		annotator: ann,
	}
	if cfg.MJPEGEnabled {
		app.previewStream = mjpeg.NewStream(time.Duration(cfg.MJPEGIntervalMs) * time.Millisecond)
	}
	app.control = control.NewServer(sess, ann, canvas, app.PublishFrame, app.saveView)

	return app, nil
}

// Start restores the saved view and publishes the first frame.
func (a *App) Start() error {
	v, err := view.Load(a.cfg.ViewPath)
	if err != nil {
		return fmt.Errorf("load view: %w", err)
	}
	a.session.SetView(v)
	a.annotator.SetTransform(a.session.View().Transform())
	a.PublishFrame()
	return nil
}

// Stop drops any armed gesture and persists the current view.
func (a *App) Stop() error {
	a.annotator.Cancel()
	return a.saveView(a.session.View())
}

// PublishFrame encodes the current surface into the preview stream.
func (a *App) PublishFrame() {
	if a.previewStream == nil {
		return
	}
	if err := a.previewStream.PublishImage(a.encoder(), a.canvas.Image()); err != nil {
		log.Printf("preview: %v", err)
	}
}

// encoder returns the preview encoder for the current settings.
func (a *App) encoder() mjpeg.Encoder {
	a.mu.Lock()
	defer a.mu.Unlock()
	return mjpeg.Encoder{
		Quality:    a.cfg.MJPEGQuality,
		Scale:      a.cfg.PreviewScale,
		Background: previewBackground,
	}
}

// saveView persists v when a view path is configured.
func (a *App) saveView(v view.View) error {
	if a.cfg.ViewPath == "" {
		return nil
	}
	return view.Save(a.cfg.ViewPath, v)
}

// Annotator returns the selector host.
func (a *App) Annotator() *annotator.Annotator {
	return a.annotator
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// PreviewStream returns the MJPEG stream, or nil when previews are disabled.
func (a *App) PreviewStream() *mjpeg.Stream {
	return a.previewStream
}
