package delay

import (
	"fmt"

	"github.com/cwbudde/algo-fracdelay/dsp/filter/fir"
)

// Fractional delays a sample stream by a fixed, possibly non-integer,
// number of samples.
type Fractional struct {
	delay  float64
	filter *fir.Filter
}

// NewFractional designs the kernel for delay and returns a zero-filled line.
// It fails with an error wrapping [core.ErrInvalidParameter] when delay is
// negative, NaN or infinite.
func NewFractional(delay float64, opts ...fir.DesignOption) (*Fractional, error) {
	coeffs, err := fir.FractionalDelay(delay, opts...)
	if err != nil {
		return nil, fmt.Errorf("delay: %w", err)
	}

	filter, err := fir.New(coeffs)
	if err != nil {
		return nil, fmt.Errorf("delay: %w", err)
	}

	return &Fractional{delay: delay, filter: filter}, nil
}

// ProcessSample pushes one input sample and returns the delayed output.
func (d *Fractional) ProcessSample(x float64) float64 {
	return d.filter.ProcessSample(x)
}

// ProcessBlock delays buf in place.
func (d *Fractional) ProcessBlock(buf []float64) {
	d.filter.ProcessBlock(buf)
}

// ProcessBlockTo delays src into dst. Both slices must have the same length.
func (d *Fractional) ProcessBlockTo(dst, src []float64) error {
	return d.filter.ProcessBlockTo(dst, src)
}

// Delay returns the configured delay in samples.
func (d *Fractional) Delay() float64 {
	return d.delay
}

// IntegerDelay returns floor(Delay()).
func (d *Fractional) IntegerDelay() int {
	whole, _ := fir.SplitDelay(d.delay)
	return whole
}

// Fraction returns Delay() - IntegerDelay().
func (d *Fractional) Fraction() float64 {
	_, frac := fir.SplitDelay(d.delay)
	return frac
}

// Len returns the kernel length, 2*IntegerDelay()+1.
func (d *Fractional) Len() int {
	return d.filter.Len()
}

// Coefficients returns a copy of the designed kernel.
func (d *Fractional) Coefficients() []float64 {
	return d.filter.Coefficients()
}

// PhaseDelay returns the realized delay in samples at freqHz.
func (d *Fractional) PhaseDelay(freqHz, sampleRate float64) float64 {
	return d.filter.PhaseDelay(freqHz, sampleRate)
}
