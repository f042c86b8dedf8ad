package testutil

import (
	"math"
	"math/rand"
)

// SineSum evaluates the sum of unit sines at phase 0 in closed form,
// sin(2*pi*f*i/sampleRate) per frequency, for length samples.
func SineSum(freqsHz []float64, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for _, f := range freqsHz {
		step := 2 * math.Pi * f / sampleRate
		for i := range out {
			out[i] += math.Sin(step * float64(i))
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ArgMaxAbs returns the index of the element with the largest magnitude,
// or -1 for an empty slice.
func ArgMaxAbs(data []float64) int {
	idx := -1
	best := -1.0
	for i, v := range data {
		if a := math.Abs(v); a > best {
			best = a
			idx = i
		}
	}
	return idx
}
