package core

import "math"

// SincTolerance is the distance from the origin inside which [Sinc]
// returns exactly 1.
const SincTolerance = 1e-8

// Sinc returns the normalized sinc function sin(pi*x)/(pi*x).
//
// The removable singularity at x = 0 is filled with 1 for |x| <= SincTolerance,
// so kernels sampled a hair away from their center still get a unit tap.
func Sinc(x float64) float64 {
	if math.Abs(x) <= SincTolerance {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

// Sum adds values left to right. The order is fixed so that results are
// reproducible bit for bit.
func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}

	return s
}
