package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/frudas24/roiselect/internal/style"
	"gopkg.in/yaml.v3"
)

// LoadStyle reads a YAML style file and overlays it on the default style.
// A missing file yields the default style.
func LoadStyle(path string) (style.Style, error) {
	def := style.Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return def, nil
		}
		return style.Style{}, err
	}
	var c style.Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return style.Style{}, fmt.Errorf("parse %s: %w", path, err)
	}
	st, err := c.Apply(def)
	if err != nil {
		return style.Style{}, fmt.Errorf("style %s: %w", path, err)
	}
	return st, nil
}
