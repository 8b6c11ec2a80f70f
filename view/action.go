package view

import "math/big"

// Action is the closed set of user inputs the viewer reacts to. Dispatch is
// a type switch; adding a variant means extending Apply.
type Action interface {
	isAction()
}

// SetRadius replaces the view radius without moving the center.
type SetRadius struct {
	Radius float64
}

// SetDepth replaces the maximum orbit depth.
type SetDepth struct {
	Depth int
}

// SetCenter re-centers the view on an exact high-precision coordinate.
type SetCenter struct {
	Real *big.Float
	Imag *big.Float
}

// ZoomAt halves the radius and re-centers on the clicked pixel.
type ZoomAt struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ZoomIn halves the radius in place.
type ZoomIn struct{}

// ZoomOut doubles the radius in place.
type ZoomOut struct{}

// Quit ends the viewer session.
type Quit struct{}

func (SetRadius) isAction() {}
func (SetDepth) isAction()  {}
func (SetCenter) isAction() {}
func (ZoomAt) isAction()    {}
func (ZoomIn) isAction()    {}
func (ZoomOut) isAction()   {}
func (Quit) isAction()      {}
