package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/frudas24/roiselect/internal/app"
	"github.com/frudas24/roiselect/internal/config"
	"github.com/frudas24/roiselect/internal/selector"
	"github.com/frudas24/roiselect/internal/session"
	"github.com/gogpu/gg"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if debug {
		gg.SetLogger(slog.Default())
		log.Printf("debug: enabled")
	}
	logStartup(cfg)

	st, err := config.LoadStyle(cfg.StylePath)
	if err != nil {
		return err
	}

	sess := session.New(cfg.UIPassword)
	appInstance, err := app.New(cfg, sess, st)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.Printf("fatal: %v", err)
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Printf("roiselect starting")
	logEnvStatus(cfg)
	logFileStatus("style", cfg.StylePath)
	logFileStatus("view", cfg.ViewPath)
	log.Printf("surface: %dx%d, default selector: %s", cfg.SurfaceWidth, cfg.SurfaceHeight, orDefault(cfg.DefaultSelector))
	if cfg.MJPEGEnabled {
		log.Printf("preview: mjpeg every %dms, quality %d, scale %.2f", cfg.MJPEGIntervalMs, cfg.MJPEGQuality, cfg.PreviewScale)
	} else {
		log.Printf("preview: disabled")
	}
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Printf("env check: ok (%s)", envPath)
	} else {
		log.Printf("env check: missing (%s)", envPath)
	}
	log.Printf("env UI_PASSWORD: set")
}

// logFileStatus reports whether an optional data file exists.
func logFileStatus(name, path string) {
	if fileExists(path) {
		log.Printf("%s file: %s", name, path)
		return
	}
	log.Printf("%s file: missing, using defaults (%s)", name, path)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Printf("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Printf("local url: http://%s", net.JoinHostPort(host, port))
}

// orDefault names the fallback selector for an empty setting.
func orDefault(name string) string {
	if name == "" {
		return selector.FancyBoxName
	}
	return name
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
