package fir

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
)

const minAnalysisFFTSize = 64

// Analysis summarizes a kernel in the time and frequency domain.
type Analysis struct {
	// DCGain is the sum of the taps.
	DCGain float64
	// PeakTap is the index of the tap with the largest magnitude.
	PeakTap int
	// FFTSize is the zero-padded transform length.
	FFTSize int
	// Magnitude holds |H| for bins 0..FFTSize/2.
	Magnitude []float64
}

// Analyze zero-pads coeffs to fftSize and computes its magnitude response.
// fftSize must be a power of two not smaller than len(coeffs); 0 selects the
// next power of two >= max(64, len(coeffs)).
func Analyze(coeffs []float64, fftSize int) (*Analysis, error) {
	if len(coeffs) == 0 {
		return nil, ErrEmptyCoefficients
	}

	if fftSize == 0 {
		fftSize = nextPowerOf2(max(minAnalysisFFTSize, len(coeffs)))
	}
	if fftSize < len(coeffs) || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fir: fft size %d must be a power of two >= %d: %w",
			fftSize, len(coeffs), core.ErrInvalidParameter)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fir: failed to create FFT plan: %w", err)
	}

	padded := make([]complex128, fftSize)
	for i, c := range coeffs {
		padded[i] = complex(c, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, padded); err != nil {
		return nil, fmt.Errorf("fir: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	peak := 0
	for i, c := range coeffs {
		if math.Abs(c) > math.Abs(coeffs[peak]) {
			peak = i
		}
	}

	return &Analysis{
		DCGain:    core.Sum(coeffs),
		PeakTap:   peak,
		FFTSize:   fftSize,
		Magnitude: mag,
	}, nil
}

// BinFrequency returns the center frequency in Hz of magnitude bin k.
func (a *Analysis) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(a.FFTSize)
}

// RippleDB returns the largest deviation from 0 dB, in dB, over the bins
// below fraction of Nyquist. fraction is clamped to [0, 1].
func (a *Analysis) RippleDB(fraction float64) float64 {
	fraction = math.Max(0, math.Min(1, fraction))
	last := int(fraction * float64(len(a.Magnitude)-1))

	worst := 0.0
	for _, m := range a.Magnitude[:last+1] {
		db := math.Abs(20 * math.Log10(m))
		if db > worst {
			worst = db
		}
	}
	return worst
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
