// Package palette provides color ramps and the palette legend widget used to
// read values off color-mapped visualizations such as SPL maps.
package palette

import (
	"image"
	"image/color"
	"math"
)

// Gradient is a continuous palette interpolating between a sequence of
// evenly spaced sRGB anchor colors.
type Gradient struct {
	Colors []color.RGBA
}

// Jet is the NASA jet palette, the conventional choice for SPL maps: dark
// blue through cyan and yellow to dark red.
var Jet = Gradient{Colors: []color.RGBA{
	{0, 0, 128, 255},
	{0, 0, 255, 255},
	{0, 255, 255, 255},
	{255, 255, 0, 255},
	{255, 0, 0, 255},
	{128, 0, 0, 255},
}}

// Grayscale maps low values to black and high values to white.
var Grayscale = Gradient{Colors: []color.RGBA{
	{0, 0, 0, 255},
	{255, 255, 255, 255},
}}

// Map interpolates the gradient at x in [0, 1]; out-of-range values clamp to
// the end colors.
func (g Gradient) Map(x float64) color.RGBA {
	if len(g.Colors) == 0 {
		return color.RGBA{A: 255}
	}

	n := x * float64(len(g.Colors)-1)
	ip, fr := math.Modf(n)
	i := int(ip)
	if i < 0 || (i == 0 && fr <= 0) {
		return g.Colors[0]
	}
	if i >= len(g.Colors)-1 {
		return g.Colors[len(g.Colors)-1]
	}
	return blend(g.Colors[i], g.Colors[i+1], fr)
}

// Ramp produces n discrete colors sampled across the gradient, index 0 at
// the low end.
func (g Gradient) Ramp(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	ramp := make([]color.RGBA, n)
	if n == 1 {
		ramp[0] = g.Map(0)
		return ramp
	}
	for i := range ramp {
		ramp[i] = g.Map(float64(i) / float64(n-1))
	}
	return ramp
}

// Image renders the gradient as a single-pixel-wide column of n colors with
// the highest value at the top, ready to be stretched horizontally by the
// hosting image view.
func (g Gradient) Image(n int) image.Image {
	ramp := g.Ramp(n)
	img := image.NewRGBA(image.Rect(0, 0, 1, len(ramp)))
	for i, c := range ramp {
		img.SetRGBA(0, len(ramp)-1-i, c)
	}
	return img
}

func blend(a, b color.RGBA, fr float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + fr*(float64(y)-float64(x))))
	}
	return color.RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 255,
	}
}
