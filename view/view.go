// Package view holds the immutable view state of a deep zoom and the closed
// set of user actions that replace it. A State is never mutated in place:
// Apply returns a fresh value and the caller swaps it in, which is what lets
// a frame in flight keep reading its own snapshot safely.
package view

import (
	"fmt"
	"math/big"

	"deepbrot/mandelbrot"
)

// State is one view of the set: a high-precision center, a half-width radius
// and the maximum orbit depth.
type State struct {
	CenterReal *big.Float
	CenterImag *big.Float
	Radius     float64
	Depth      int
}

// NewState is the default whole-set view.
func NewState() State {
	return State{
		CenterReal: new(big.Float).SetPrec(mandelbrot.CenterPrecision),
		CenterImag: new(big.Float).SetPrec(mandelbrot.CenterPrecision),
		Radius:     2,
		Depth:      1000,
	}
}

func (s State) String() string {
	return fmt.Sprintf("center %s + i %s radius %g depth %d",
		s.CenterReal.Text('g', 20), s.CenterImag.Text('g', 20), s.Radius, s.Depth)
}

// Apply produces the state that follows s under action. The input state is
// left untouched; shared big.Float values are copied before modification.
// Actions carrying parameters are assumed to be validated already (the
// parser rejects bad text before an action is ever built).
func Apply(s State, action Action) State {
	next := s
	switch a := action.(type) {
	case SetRadius:
		next.Radius = a.Radius
	case SetDepth:
		next.Depth = a.Depth
	case SetCenter:
		next.CenterReal = new(big.Float).SetPrec(mandelbrot.CenterPrecision).Set(a.Real)
		next.CenterImag = new(big.Float).SetPrec(mandelbrot.CenterPrecision).Set(a.Imag)
	case ZoomAt:
		window := a.Width
		if a.Height < a.Width {
			window = a.Height
		}
		if window == 0 {
			return s
		}
		offsetReal := s.Radius * float64(2*a.X-a.Width) / float64(window)
		offsetImag := -s.Radius * float64(2*a.Y-a.Height) / float64(window)
		next.CenterReal = new(big.Float).SetPrec(mandelbrot.CenterPrecision).Set(s.CenterReal)
		next.CenterReal.Add(next.CenterReal, big.NewFloat(offsetReal))
		next.CenterImag = new(big.Float).SetPrec(mandelbrot.CenterPrecision).Set(s.CenterImag)
		next.CenterImag.Add(next.CenterImag, big.NewFloat(offsetImag))
		next.Radius = s.Radius / 2
	case ZoomIn:
		next.Radius = s.Radius / 2
	case ZoomOut:
		next.Radius = s.Radius * 2
	case Quit:
	}
	return next
}

// InvalidatesOrbit reports whether the action moves the reference point or
// changes the orbit depth. Radius-only changes reuse the current orbit; the
// reference orbit depends on nothing else.
func InvalidatesOrbit(action Action) bool {
	switch action.(type) {
	case SetDepth, SetCenter, ZoomAt:
		return true
	}
	return false
}
