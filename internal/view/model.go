// Package view stores the pan/zoom state of the item shown on the drawing surface.
package view

import "github.com/frudas24/roiselect/internal/viewport"

// View describes how the item is placed on the surface.
// Width and Height are the item size in item pixels; zero means unknown.
type View struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Zoom   float64 `json:"zoom"`
	PanX   float64 `json:"panX"`
	PanY   float64 `json:"panY"`
}

// Normalize returns a view with a positive zoom and non-negative item size.
func Normalize(v View) View {
	if v.Zoom <= 0 {
		v.Zoom = 1
	}
	if v.Width < 0 {
		v.Width = 0
	}
	if v.Height < 0 {
		v.Height = 0
	}
	return v
}

// Transform returns the item↔viewport transform of v.
func (v View) Transform() viewport.Transform {
	n := Normalize(v)
	return viewport.NewTransform(n.Zoom, n.PanX, n.PanY)
}

// Fit returns v zoomed and panned so the item is centred inside a w×h surface.
// Views with an unknown item size are returned normalized and otherwise unchanged.
func Fit(v View, w, h int) View {
	v = Normalize(v)
	if v.Width == 0 || v.Height == 0 || w <= 0 || h <= 0 {
		return v
	}
	zx := float64(w) / float64(v.Width)
	zy := float64(h) / float64(v.Height)
	v.Zoom = min(zx, zy)
	v.PanX = (float64(w) - float64(v.Width)*v.Zoom) / 2
	v.PanY = (float64(h) - float64(v.Height)*v.Zoom) / 2
	return v
}
