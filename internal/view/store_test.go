package view

import (
	"os"
	"path/filepath"
	"testing"
)

// TestSaveLoad_RoundTrip verifies saving and loading preserves the view.
func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "view.json")
	in := View{Width: 1920, Height: 1080, Zoom: 0.5, PanX: 12, PanY: -4}

	if err := Save(path, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

// TestLoad_MissingFile_ReturnsEmpty verifies missing files return zero data.
func TestLoad_MissingFile_ReturnsEmpty(t *testing.T) {
	out, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if out != (View{}) {
		t.Fatalf("expected empty view, got %+v", out)
	}
}

// TestLoad_Corrupt verifies malformed files are reported.
func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for corrupt file")
	}
}
