package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const fillAlpha = 160

// Style controls how a layer's features are drawn.
type Style struct {
	Stroke      color.NRGBA
	Fill        color.NRGBA
	StrokeWidth int
	PointRadius int
}

// DefaultStyle returns the style used when a layer configures none.
func DefaultStyle() Style {
	s, _ := NewStyle("#1f6feb", "", 1, 3)
	return s
}

// NewStyle builds a style from hex colors. An empty fill derives a
// lightened, semi-transparent shade of the stroke color. Non-positive
// widths and radii fall back to usable defaults.
func NewStyle(stroke, fill string, strokeWidth, pointRadius int) (Style, error) {
	if stroke == "" {
		stroke = "#1f6feb"
	}
	sc, err := colorful.Hex(stroke)
	if err != nil {
		return Style{}, fmt.Errorf("stroke color %q: %w", stroke, err)
	}

	var fc colorful.Color
	if fill == "" {
		fc = lighten(sc, 0.25)
	} else {
		fc, err = colorful.Hex(fill)
		if err != nil {
			return Style{}, fmt.Errorf("fill color %q: %w", fill, err)
		}
	}

	if strokeWidth < 1 {
		strokeWidth = 1
	}
	if pointRadius < 1 {
		pointRadius = 3
	}
	return Style{
		Stroke:      nrgba(sc, 255),
		Fill:        nrgba(fc, fillAlpha),
		StrokeWidth: strokeWidth,
		PointRadius: pointRadius,
	}, nil
}

// ParseColor parses a hex color such as "#ffffff" into an opaque NRGBA.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	return nrgba(c, 255), nil
}

// lighten raises the CIE-Lab lightness of c by delta, clamped to the RGB
// gamut.
func lighten(c colorful.Color, delta float64) colorful.Color {
	l, a, b := c.Lab()
	l += delta
	if l > 1 {
		l = 1
	}
	return colorful.Lab(l, a, b).Clamped()
}

func nrgba(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}
