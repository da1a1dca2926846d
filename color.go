package perlerpix

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"
)

// Lab is a CIE L*a*b* triple relative to the D65 white point.
type Lab struct {
	L, A, B float64
}

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R, G, B uint8
}

// Luma returns the Rec. 601 luma in [0,255].
func (c RGB) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ============ sRGB → XYZ → LAB ============

// Linear sRGB (scaled to 0-100) to XYZ.
var srgbToXYZ = r3.NewMat([]float64{
	0.4124, 0.3576, 0.1805,
	0.2126, 0.7152, 0.0722,
	0.0193, 0.1192, 0.9505,
})

// D65 reference white.
var whiteD65 = r3.Vec{X: 95.047, Y: 100.000, Z: 108.883}

func linearize(c uint8) float64 {
	v := float64(c) / 255.0
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// RGBToLab converts an 8-bit sRGB color to CIE L*a*b*.
func RGBToLab(c RGB) Lab {
	lin := r3.Vec{
		X: linearize(c.R) * 100,
		Y: linearize(c.G) * 100,
		Z: linearize(c.B) * 100,
	}
	xyz := srgbToXYZ.MulVec(lin)
	fx := labF(xyz.X / whiteD65.X)
	fy := labF(xyz.Y / whiteD65.Y)
	fz := labF(xyz.Z / whiteD65.Z)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// ParseHex parses a 6-digit hex color with or without the leading '#'.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 {
		return RGB{}, fmt.Errorf("%w: %q is not a 6-digit hex color", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
