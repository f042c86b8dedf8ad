package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
)

// Source produces an endless stream of samples, one per call.
type Source interface {
	Next() float64
}

// Tone is a sine oscillator driven by a phase accumulator.
//
// The first sample is sin(0). The phase advances by 2*pi*f/fs per sample
// and is pulled back by 2*pi once it exceeds 2*pi. A Tone cannot be
// rewound; construct a new one to restart.
type Tone struct {
	delta float64
	phase float64
}

// NewTone returns a Tone at freqHz for the given sample rate.
func NewTone(freqHz, sampleRate float64) (*Tone, error) {
	if !(freqHz > 0) || math.IsInf(freqHz, 0) {
		return nil, fmt.Errorf("signal: tone frequency must be finite and > 0: %v: %w", freqHz, core.ErrInvalidParameter)
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("signal: sample rate must be finite and > 0: %v: %w", sampleRate, core.ErrInvalidParameter)
	}

	return &Tone{delta: freqHz * 2 * math.Pi / sampleRate}, nil
}

// Next returns the current sample and advances the phase.
func (t *Tone) Next() float64 {
	v := math.Sin(t.phase)

	t.phase += t.delta
	if t.phase > 2*math.Pi {
		t.phase -= 2 * math.Pi
	}

	return v
}

// Phase returns the phase of the next sample in radians.
func (t *Tone) Phase() float64 {
	return t.phase
}

// Mix sums several sources sample by sample.
type Mix struct {
	sources []Source
}

// NewMix returns a Mix over sources. A Mix with no sources yields silence.
func NewMix(sources ...Source) *Mix {
	return &Mix{sources: append([]Source(nil), sources...)}
}

// Next pulls one sample from every source and returns their sum, added
// left to right in the order the sources were given.
func (m *Mix) Next() float64 {
	if len(m.sources) == 0 {
		return 0
	}

	sum := m.sources[0].Next()
	for _, s := range m.sources[1:] {
		sum += s.Next()
	}

	return sum
}

// Len returns the number of mixed sources.
func (m *Mix) Len() int {
	return len(m.sources)
}
