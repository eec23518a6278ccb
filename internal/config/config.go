// Package config loads environment configuration for roiselect.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr      = "0.0.0.0:8787"
	defaultDataDir         = "./data"
	defaultSurfaceWidth    = 1280
	defaultSurfaceHeight   = 720
	defaultMJPEGEnabled    = true
	defaultMJPEGIntervalMs = 120
	defaultMJPEGQuality    = 60
	defaultPreviewScale    = 1.0
	defaultPointerMinMove  = 0
)

// Accepted range for MJPEG_INTERVAL_MS and the runtime preview setting.
const (
	MinMJPEGIntervalMs = 10
	MaxMJPEGIntervalMs = 5000
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr       string
	UIPassword       string
	DataDir          string
	ViewPath         string
	StylePath        string
	SurfaceWidth     int
	SurfaceHeight    int
	DefaultSelector  string
	MJPEGEnabled     bool
	MJPEGIntervalMs  int
	MJPEGQuality     int
	PreviewScale     float64
	PointerMinMoveMs int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:       defaultListenAddr,
		DataDir:          defaultDataDir,
		SurfaceWidth:     defaultSurfaceWidth,
		SurfaceHeight:    defaultSurfaceHeight,
		MJPEGEnabled:     defaultMJPEGEnabled,
		MJPEGIntervalMs:  defaultMJPEGIntervalMs,
		MJPEGQuality:     defaultMJPEGQuality,
		PreviewScale:     defaultPreviewScale,
		PointerMinMoveMs: defaultPointerMinMove,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.ViewPath = envString("VIEW_PATH", filepath.Join(cfg.DataDir, "view.json"))
	cfg.StylePath = envString("STYLE_PATH", filepath.Join(cfg.DataDir, "style.yaml"))
	cfg.DefaultSelector = envString("DEFAULT_SELECTOR", "")
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))

	var err error
	if cfg.SurfaceWidth, err = envPositiveInt("SURFACE_WIDTH", cfg.SurfaceWidth); err != nil {
		return Config{}, err
	}
	if cfg.SurfaceHeight, err = envPositiveInt("SURFACE_HEIGHT", cfg.SurfaceHeight); err != nil {
		return Config{}, err
	}

	cfg.MJPEGEnabled = envBool("MJPEG_ENABLED", cfg.MJPEGEnabled)

	if cfg.MJPEGIntervalMs, err = envInt("MJPEG_INTERVAL_MS", cfg.MJPEGIntervalMs); err != nil {
		return Config{}, err
	}
	if cfg.MJPEGIntervalMs < MinMJPEGIntervalMs || cfg.MJPEGIntervalMs > MaxMJPEGIntervalMs {
		return Config{}, fmt.Errorf("MJPEG_INTERVAL_MS must be %d-%d", MinMJPEGIntervalMs, MaxMJPEGIntervalMs)
	}

	if cfg.MJPEGQuality, err = envInt("MJPEG_QUALITY", cfg.MJPEGQuality); err != nil {
		return Config{}, err
	}
	if cfg.MJPEGQuality <= 0 || cfg.MJPEGQuality > 100 {
		return Config{}, fmt.Errorf("MJPEG_QUALITY must be 1-100")
	}

	if cfg.PreviewScale, err = envFloat("PREVIEW_SCALE", cfg.PreviewScale); err != nil {
		return Config{}, err
	}
	if cfg.PreviewScale <= 0 || cfg.PreviewScale > 4 {
		return Config{}, fmt.Errorf("PREVIEW_SCALE must be in (0, 4]")
	}

	if cfg.PointerMinMoveMs, err = envInt("POINTER_MIN_MOVE_MS", cfg.PointerMinMoveMs); err != nil {
		return Config{}, err
	}
	if cfg.PointerMinMoveMs < 0 {
		return Config{}, fmt.Errorf("POINTER_MIN_MOVE_MS must be >= 0")
	}

	if cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envPositiveInt is envInt restricted to values above zero.
func envPositiveInt(key string, def int) (int, error) {
	v, err := envInt(key, def)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return v, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding the environment.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
