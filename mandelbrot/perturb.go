package mandelbrot

// PixelBailout is the squared-magnitude escape threshold for pixel
// iteration. Squared so the hot loop never takes a square root.
const PixelBailout = 256

// Iterate runs the perturbation recurrence for a pixel at offset delta0 from
// the reference center and returns the iteration count together with the
// final squared magnitude of the reconstructed iterate.
//
// The recurrence is delta <- delta*(2*Xn + delta) + delta0, where 2*Xn is the
// pre-doubled orbit sample. The true iterate Xn + delta is reconstructed from
// the next sample for the escape test. An iteration count equal to the orbit
// length means the pixel never escaped within the orbit and is treated as
// inside the set; the magnitude reported alongside it is whatever the last
// escape test produced and carries no meaning.
func (o Orbit) Iterate(delta0 complex128) (int, float64) {
	iterations := 0
	magnitudeSq := 0.0

	delta := delta0
	for iterations < len(o) {
		delta = delta*(o[iterations]+delta) + delta0
		iterations++
		if iterations == len(o) {
			break
		}
		z := o[iterations]*complex(0.5, 0) + delta
		magnitudeSq = real(z)*real(z) + imag(z)*imag(z)
		if magnitudeSq >= PixelBailout {
			break
		}
	}
	return iterations, magnitudeSq
}

// PixelOffset converts a pixel position to its complex offset from the view
// center. The shorter viewport side normalizes both axes so the complex
// plane keeps its proportions on non-square windows; the imaginary axis is
// negated because pixel rows grow downward. The caller guarantees a nonzero
// viewport.
func PixelOffset(column int, row int, width int, height int, radius float64) complex128 {
	window := float64(width)
	if height < width {
		window = float64(height)
	}
	return complex(
		radius*float64(2*column-width)/window,
		-radius*float64(2*row-height)/window,
	)
}
