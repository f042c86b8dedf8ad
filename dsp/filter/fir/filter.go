package fir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
)

// ErrEmptyCoefficients is returned when a filter or analysis receives no taps.
var ErrEmptyCoefficients = fmt.Errorf("fir: coefficients must not be empty: %w", core.ErrInvalidParameter)

var errMismatchedLength = errors.New("fir: dst and src must have same length")

// Filter implements a direct-form FIR filter using a circular-buffer delay line.
//
// A Filter is not safe for concurrent use. Independent instances share no
// state.
type Filter struct {
	coeffs []float64
	ring   []float64
	pos    int
}

// New creates a FIR filter from the given coefficient slice.
// The coefficients are copied. The ring buffer starts zero-filled.
func New(coeffs []float64) (*Filter, error) {
	if len(coeffs) == 0 {
		return nil, ErrEmptyCoefficients
	}

	c := make([]float64, len(coeffs))
	copy(c, coeffs)

	return &Filter{
		coeffs: c,
		ring:   make([]float64, len(coeffs)),
	}, nil
}

// ProcessSample filters one input sample.
//
// The sample is written at the cursor, the cursor advances, and the output
// is accumulated walking the ring backwards from the newest sample:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
//
// Tap 0 pairs with the sample just written, tap N-1 with the oldest one.
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.ring)

	f.ring[f.pos] = x
	f.pos++
	if f.pos >= n {
		f.pos = 0
	}

	var y float64
	p := f.pos
	for _, c := range f.coeffs {
		if p > 0 {
			p--
		} else {
			p = n - 1
		}
		// Explicit conversion keeps the product rounded on its own (no FMA).
		y += float64(c * f.ring[p])
	}

	return y
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
func (f *Filter) ProcessBlockTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return errMismatchedLength
	}

	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}

	return nil
}

// Len returns the number of taps, which is also the ring buffer capacity.
func (f *Filter) Len() int {
	return len(f.coeffs)
}

// Order returns the filter order (len(coeffs) - 1).
func (f *Filter) Order() int {
	return len(f.coeffs) - 1
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.coeffs))
	copy(c, f.coeffs)
	return c
}

// Response computes the complex frequency response H(e^{jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	return response(f.coeffs, 2*math.Pi*freqHz/sampleRate)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// PhaseDelay returns the phase delay in samples, -arg(H(e^{jw}))/w, at the
// given frequency. The result is only meaningful while w times the delay
// stays below pi; above that the phase wraps. At 0 Hz the limit is not
// taken and NaN is returned.
func (f *Filter) PhaseDelay(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	if w == 0 {
		return math.NaN()
	}

	return -cmplx.Phase(response(f.coeffs, w)) / w
}

func response(coeffs []float64, w float64) complex128 {
	var h complex128
	for k, c := range coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}
