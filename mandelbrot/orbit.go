package mandelbrot

import (
	"math/big"
)

const (
	// CenterPrecision is the mantissa size of the view center in bits,
	// roughly 100 significant decimal digits.
	CenterPrecision uint = 333

	// OrbitBailout caps the pre-doubled orbit samples. Once either
	// component passes it the reference point has escaped and the orbit
	// cannot be extended.
	OrbitBailout = 1024
)

// Orbit is the reference orbit for a view: the iterates of the Mandelbrot
// recurrence at the high-precision center, each stored pre-doubled (2*Xn) as
// that is the form the perturbation recurrence consumes. It is computed once
// per view and read concurrently by every pixel afterwards.
type Orbit []complex128

// NewOrbit iterates the Mandelbrot recurrence at (centerReal, centerImag)
// with arbitrary precision for up to depth steps. The orbit comes back
// shorter than depth when the reference point escapes; that is still a valid
// orbit, it just caps every pixel's iteration count sooner.
//
// This is the only arbitrary-precision computation in the program. Its cost
// is paid once per view, not once per pixel.
func NewOrbit(centerReal *big.Float, centerImag *big.Float, depth int) Orbit {
	orbit := make(Orbit, 0, depth)

	xr := new(big.Float).SetPrec(CenterPrecision).Set(centerReal)
	xi := new(big.Float).SetPrec(CenterPrecision).Set(centerImag)
	re := new(big.Float).SetPrec(CenterPrecision)
	im := new(big.Float).SetPrec(CenterPrecision)
	t1 := new(big.Float).SetPrec(CenterPrecision)
	t2 := new(big.Float).SetPrec(CenterPrecision)

	for i := 0; i < depth; i++ {
		// Pre-double before storing
		re.Add(xr, xr)
		im.Add(xi, xi)

		ref, _ := re.Float64()
		imf, _ := im.Float64()
		orbit = append(orbit, complex(ref, imf))

		// Keep the samples representable as float64
		if ref > OrbitBailout || ref < -OrbitBailout || imf > OrbitBailout || imf < -OrbitBailout {
			return orbit
		}

		// Next iterate; re still holds 2*xr so the imaginary part reuses it
		t1.Mul(xr, xr)
		t2.Mul(xi, xi)
		xr.Sub(t1, t2)
		xr.Add(xr, centerReal)
		xi.Mul(re, xi)
		xi.Add(xi, centerImag)
	}
	return orbit
}
