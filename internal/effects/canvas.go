package effects

import (
	"fmt"
	"image/color"
)

// Color is an RGB colour with a floating-point opacity. The opacity is kept
// exactly as the simulation produced it; nothing clamps it before formatting.
type Color struct {
	R, G, B uint8
	A       float64
}

// String formats the colour the way a 2D canvas fill/stroke style expects.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

// NRGBA converts to a raster colour. Opacity outside [0,1] cannot be
// represented in eight bits, so it saturates here and only here.
func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// Palette.
var (
	NightParticle = Color{R: 255, G: 255, B: 255}
	DayParticle   = Color{R: 37, G: 99, B: 235}
	NightRipple   = Color{R: 96, G: 165, B: 250}
)

func withAlpha(c Color, a float64) Color {
	c.A = a
	return c
}

// Canvas is the drawing surface a renderer paints one frame onto.
type Canvas interface {
	Clear()
	FillCircle(x, y, r float64, c Color)
	StrokeCircle(x, y, r, width float64, c Color)
	Line(x1, y1, x2, y2, width float64, c Color)
}

// Discard is a Canvas that draws nothing.
var Discard Canvas = discard{}

type discard struct{}

func (discard) Clear()                                       {}
func (discard) FillCircle(x, y, r float64, c Color)          {}
func (discard) StrokeCircle(x, y, r, width float64, c Color) {}
func (discard) Line(x1, y1, x2, y2, width float64, c Color)  {}
