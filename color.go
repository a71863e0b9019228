package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Hsl is a hue/saturation/lightness color, all components in [0,1].
type Hsl struct {
	H float32
	S float32
	L float32
}

// HslOf converts an RGB color (components in [0,1]) to HSL.
func HslOf(c mgl32.Vec3) Hsl {
	r, g, b := c.X(), c.Y(), c.Z()
	max := max(r, g, b)
	min := min(r, g, b)
	m := (max + min) / 2

	if max == min {
		return Hsl{H: 0, S: 0, L: m}
	}

	d := max - min
	var h float32
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6

	var s float32
	if m > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	return Hsl{H: h, S: s, L: m}
}

// RGB converts back to RGB, components in [0,1].
func (c Hsl) RGB() mgl32.Vec3 {
	if c.H == 0 && c.S == 0 {
		return mgl32.Vec3{c.L, c.L, c.L}
	}

	var q float32
	if c.L < 0.5 {
		q = c.L * (1 + c.S)
	} else {
		q = c.L + c.S - c.L*c.S
	}
	p := 2*c.L - q

	return mgl32.Vec3{
		hueToRgb(p, q, c.H+1.0/3.0),
		hueToRgb(p, q, c.H),
		hueToRgb(p, q, c.H-1.0/3.0),
	}
}

func (c Hsl) RGBA() mgl32.Vec4 {
	return c.RGB().Vec4(1)
}

func hueToRgb(p, q, t float32) float32 {
	if t < 0 {
		t++
	} else if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// YPbPr is a luma/chroma color: Y in [0,1], Pb and Pr in [-0.5, 0.5].
type YPbPr struct {
	Y  float32
	Pb float32
	Pr float32
}

// YPbPrOf converts an RGB color (components in [0,1]) to YPbPr using the
// BT.601 coefficients.
func YPbPrOf(c mgl32.Vec3) YPbPr {
	r, g, b := c.X(), c.Y(), c.Z()
	return YPbPr{
		Y:  0.299000*r + 0.587000*g + 0.114000*b,
		Pb: -0.168736*r - 0.331264*g + 0.500000*b,
		Pr: 0.500000*r - 0.418688*g - 0.081312*b,
	}
}

// RGB converts back to RGB, clamping each component to [0,1].
func (c YPbPr) RGB() mgl32.Vec3 {
	r := c.Y + 1.402000*c.Pr
	g := c.Y - 0.344136*c.Pb - 0.714136*c.Pr
	b := c.Y + 1.772000*c.Pb
	return mgl32.Vec3{
		mgl32.Clamp(r, 0, 1),
		mgl32.Clamp(g, 0, 1),
		mgl32.Clamp(b, 0, 1),
	}
}

func (c YPbPr) RGBA() mgl32.Vec4 {
	return c.RGB().Vec4(1)
}
