package mandelbrot

import (
	"deepbrot/misc"
	"image/color"
	"math"
)

// StepsPerAnchor is the number of interpolated colors emitted between each
// pair of consecutive anchors.
const StepsPerAnchor = 100

// smoothScale stretches the continuous iteration count before the palette
// lookup so neighboring escape bands land on distinct colors.
const smoothScale = 10

// DefaultAnchors is the default gradient: black, blue, purple, white,
// yellow, red.
var DefaultAnchors = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
	{R: 128, G: 0, B: 255, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
}

var insetColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// Palette is a dense color table expanded from a short list of anchors.
// It is immutable after construction and indexed cyclically.
type Palette []color.RGBA

// NewPalette expands the anchors into a lookup table by linear interpolation
// between each consecutive pair. The anchors are treated as a cycle, so the
// last segment wraps back to the first anchor. At least two anchors are
// required for the gradient to be meaningful.
func NewPalette(anchors []color.RGBA) Palette {
	palette := make(Palette, 0, len(anchors)*StepsPerAnchor)
	for i := 0; i < len(anchors); i++ {
		next := anchors[(i+1)%len(anchors)]
		for j := 0; j < StepsPerAnchor; j++ {
			fraction := float64(j) / StepsPerAnchor
			palette = append(palette, misc.LinearInterpolationRGB(anchors[i], next, fraction))
		}
	}
	return palette
}

// At indexes the palette cyclically. Negative indexes wrap the same way
// positive ones do.
func (p Palette) At(index int) color.RGBA {
	index %= len(p)
	if index < 0 {
		index += len(p)
	}
	return p[index]
}

// Color maps a pixel's iteration result to a color. Pixels that exhausted
// the orbit are in the set and come back black; everything else gets a
// smoothed palette lookup so escape bands blend into each other instead of
// forming hard rings.
func (p Palette) Color(iterations int, magnitudeSq float64, orbitLength int) color.RGBA {
	if iterations >= orbitLength {
		return insetColor
	}
	// log2(log2(x)) needs x > 1. Escaped pixels always report at least the
	// bailout, but clamp anyway so a degenerate magnitude cannot turn into
	// a NaN index.
	if magnitudeSq < 2 {
		magnitudeSq = 2
	}
	nu := float64(iterations) - math.Log2(math.Log2(magnitudeSq))
	return p.At(int(nu * smoothScale))
}
