package signal

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used by [Generator.WhiteNoise].
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Tone returns a new oscillator at freqHz using the generator sample rate.
func (g *Generator) Tone(freqHz float64) (*Tone, error) {
	return NewTone(freqHz, g.cfg.SampleRate)
}

// Sine generates samples of a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: sine samples must be > 0: %d: %w", samples, core.ErrInvalidParameter)
	}

	tone, err := g.Tone(freqHz)
	if err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	g.Fill(out, tone)
	for i := range out {
		out[i] *= amplitude
	}
	return out, nil
}

// Fill writes consecutive samples from src into buf.
func (g *Generator) Fill(buf []float64, src Source) {
	for i := range buf {
		buf[i] = src.Next()
	}
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude]. The same
// seed always yields the same samples.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d: %w", samples, core.ErrInvalidParameter)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %g: %w", amplitude, core.ErrInvalidParameter)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}
