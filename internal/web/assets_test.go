package web

import (
	"io/fs"
	"testing"
)

// TestStaticFS_ContainsClient verifies the client files are embedded.
func TestStaticFS_ContainsClient(t *testing.T) {
	sub, err := StaticFS()
	if err != nil {
		t.Fatalf("StaticFS: %v", err)
	}
	for _, name := range []string{"index.html", "app.js", "style.css"} {
		if _, err := fs.Stat(sub, name); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}
