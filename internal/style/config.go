package style

import "fmt"

// StrokeConfig is the YAML form of a Stroke.
type StrokeConfig struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
}

// Config is the YAML form of a Style. Empty fields keep their defaults.
type Config struct {
	Outer     StrokeConfig `yaml:"outer"`
	Inner     StrokeConfig `yaml:"inner"`
	Highlight string       `yaml:"highlight"`
	Handle    struct {
		Radius float64      `yaml:"radius"`
		Fill   string       `yaml:"fill"`
		Stroke StrokeConfig `yaml:"stroke"`
	} `yaml:"handle"`
	Mask     string       `yaml:"mask"`
	Freehand StrokeConfig `yaml:"freehand"`
}

// Apply overlays c on base and validates the result.
func (c Config) Apply(base Style) (Style, error) {
	out := base
	var err error
	if out.Outer, err = c.Outer.apply("outer", out.Outer); err != nil {
		return Style{}, err
	}
	if out.Inner, err = c.Inner.apply("inner", out.Inner); err != nil {
		return Style{}, err
	}
	if out.Highlight, err = colorOr("highlight", c.Highlight, out.Highlight); err != nil {
		return Style{}, err
	}
	if c.Handle.Radius < 0 {
		return Style{}, fmt.Errorf("handle.radius must be >= 0")
	}
	if c.Handle.Radius > 0 {
		out.Handle.Radius = c.Handle.Radius
	}
	if out.Handle.Fill, err = colorOr("handle.fill", c.Handle.Fill, out.Handle.Fill); err != nil {
		return Style{}, err
	}
	if out.Handle.Stroke, err = c.Handle.Stroke.apply("handle.stroke", out.Handle.Stroke); err != nil {
		return Style{}, err
	}
	if out.Mask, err = colorOr("mask", c.Mask, out.Mask); err != nil {
		return Style{}, err
	}
	if out.Freehand, err = c.Freehand.apply("freehand", out.Freehand); err != nil {
		return Style{}, err
	}
	return out, nil
}

// apply overlays c on base.
func (c StrokeConfig) apply(name string, base Stroke) (Stroke, error) {
	if c.Width < 0 {
		return Stroke{}, fmt.Errorf("%s.width must be >= 0", name)
	}
	if c.Width > 0 {
		base.Width = c.Width
	}
	col, err := colorOr(name+".color", c.Color, base.Color)
	if err != nil {
		return Stroke{}, err
	}
	base.Color = col
	return base, nil
}

// colorOr parses raw, or returns def when raw is empty.
func colorOr(name, raw string, def Color) (Color, error) {
	if raw == "" {
		return def, nil
	}
	c, err := ParseColor(raw)
	if err != nil {
		return Color{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}
