package view

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Load reads a view from disk. Missing files return the zero view.
func Load(path string) (View, error) {
	var v View
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, err
	}
	return v, nil
}

// Save writes a view to disk, creating parent directories as needed.
func Save(path string, v View) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
