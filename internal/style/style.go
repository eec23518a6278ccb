// Package style holds the colours and stroke widths used for previews and committed shapes.
package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for colour strings that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color is an sRGB colour with straight alpha.
type Color struct {
	colorful.Color
	Alpha float64
}

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{Color: c, Alpha: alpha}, nil
}

// MustParseColor is ParseColor for package-level constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Color) Hex() string {
	if c.Alpha >= 1 {
		return c.Color.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Color.Hex(), uint8(c.Alpha*255+0.5))
}

// Components returns the straight components in [0,1].
func (c Color) Components() (r, g, b, a float64) {
	cl := c.Color.Clamped()
	return cl.R, cl.G, cl.B, c.Alpha
}

// Stroke is a line colour and width.
type Stroke struct {
	Color Color
	Width float64
}

// Handle styles the dot drawn on the live point.
type Handle struct {
	Radius float64
	Fill   Color
	Stroke Stroke
}

// Style is the full drawing style of the selectors.
type Style struct {
	Outer     Stroke
	Inner     Stroke
	Highlight Color
	Handle    Handle
	Mask      Color
	Freehand  Stroke
}

// Default returns the stock selector style.
func Default() Style {
	return Style{
		Outer:     Stroke{Color: MustParseColor("#000000"), Width: 2.5},
		Inner:     Stroke{Color: MustParseColor("#ffffff"), Width: 1.4},
		Highlight: MustParseColor("#fff000"),
		Handle: Handle{
			Radius: 3.5,
			Fill:   MustParseColor("#ffffff"),
			Stroke: Stroke{Color: MustParseColor("#000000"), Width: 1},
		},
		Mask:     MustParseColor("#00000066"),
		Freehand: Stroke{Color: MustParseColor("#ffffff"), Width: 2},
	}
}

// InnerColor returns the inner stroke colour for a committed shape.
func (s Style) InnerColor(highlight bool) Color {
	if highlight {
		return s.Highlight
	}
	return s.Inner.Color
}
