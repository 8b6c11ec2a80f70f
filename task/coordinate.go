package task

import "fmt"

// Coordinate is one pixel of one frame of a zoom sequence. The reference
// center is not part of it: every frame of a sequence shares the same
// high-precision center, and with it the same reference orbit, which workers
// fetch once at registration. Only the radius varies between frames.
type Coordinate struct {
	Column uint
	Radius float64
	Row    uint
}

func (c *Coordinate) String() string {
	output := "{Coordinate "
	output += fmt.Sprintf("Column: %d ", c.Column)
	output += fmt.Sprintf("Radius: %g ", c.Radius)
	output += fmt.Sprintf("Row: %d}", c.Row)
	return output
}
