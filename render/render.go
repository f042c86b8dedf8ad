package render

import (
	"fmt"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/dsp/delay"
	"github.com/cwbudde/algo-fracdelay/dsp/filter/fir"
	"github.com/cwbudde/algo-fracdelay/dsp/signal"
	"github.com/cwbudde/algo-fracdelay/dsp/window"
)

// Config describes a batch run.
type Config struct {
	// FrequenciesHz lists the tone pitches; their samples are summed in order.
	FrequenciesHz []int `json:"frequencies_hz"`
	// SampleRate is the shared timebase of all tones.
	SampleRate int `json:"sample_rate"`
	// DelaySamples is the fractional delay applied to the mix.
	DelaySamples float64 `json:"delay_samples"`
	// Iterations is the number of frames to produce.
	Iterations int `json:"iteration_count"`
	// Window tapers the delay kernel. The zero value is rectangular;
	// DefaultConfig selects Hamming.
	Window window.Type `json:"-"`
	// BlockSize is the processing chunk length; 0 uses the core default.
	BlockSize int `json:"-"`
}

// DefaultConfig returns the reference scenario: 600, 1200 and 2562 Hz at
// 48 kHz, delayed by 7.816 samples, 101 frames.
func DefaultConfig() Config {
	return Config{
		FrequenciesHz: []int{600, 1200, 2562},
		SampleRate:    48000,
		DelaySamples:  7.816,
		Iterations:    101,
		Window:        window.TypeHamming,
	}
}

// Validate reports the first invalid field. Errors wrap
// [core.ErrInvalidParameter].
func (c Config) Validate() error {
	if len(c.FrequenciesHz) == 0 {
		return fmt.Errorf("render: at least one frequency is required: %w", core.ErrInvalidParameter)
	}
	for _, f := range c.FrequenciesHz {
		if f <= 0 {
			return fmt.Errorf("render: frequency must be > 0: %d: %w", f, core.ErrInvalidParameter)
		}
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("render: sample rate must be > 0: %d: %w", c.SampleRate, core.ErrInvalidParameter)
	}
	if err := fir.ValidateDelay(c.DelaySamples); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("render: iteration count must be >= 0: %d: %w", c.Iterations, core.ErrInvalidParameter)
	}
	if !c.Window.Valid() {
		return fmt.Errorf("render: window %v: %w", c.Window, core.ErrInvalidParameter)
	}
	if c.BlockSize < 0 {
		return fmt.Errorf("render: block size must be >= 0: %d: %w", c.BlockSize, core.ErrInvalidParameter)
	}
	return nil
}

// Frame is one produced sample pair.
type Frame struct {
	Index   int     `json:"index"`
	Raw     float64 `json:"raw"`
	Delayed float64 `json:"delayed"`
}

// Stream produces cfg.Iterations frames and hands each to fn in order.
// It stops at the first error returned by fn.
func Stream(cfg Config, fn func(Frame) error) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	line, err := delay.NewFractional(cfg.DelaySamples, fir.WithWindow(cfg.Window))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	g := signal.NewGenerator(
		core.WithSampleRate(float64(cfg.SampleRate)),
		core.WithBlockSize(cfg.BlockSize),
	)

	sources := make([]signal.Source, len(cfg.FrequenciesHz))
	for i, f := range cfg.FrequenciesHz {
		tone, err := g.Tone(float64(f))
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		sources[i] = tone
	}
	mix := signal.NewMix(sources...)

	blockSize := min(g.Config().BlockSize, max(cfg.Iterations, 1))
	raw := core.EnsureLen(nil, blockSize)
	delayed := core.EnsureLen(nil, blockSize)

	for start := 0; start < cfg.Iterations; start += blockSize {
		n := min(blockSize, cfg.Iterations-start)

		g.Fill(raw[:n], mix)
		if err := line.ProcessBlockTo(delayed[:n], raw[:n]); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		for i := range n {
			if err := fn(Frame{Index: start + i, Raw: raw[i], Delayed: delayed[i]}); err != nil {
				return err
			}
		}
	}

	return nil
}

// Run collects all frames of cfg.
func Run(cfg Config) ([]Frame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	frames := make([]Frame, 0, cfg.Iterations)
	err := Stream(cfg, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return frames, nil
}
