package fir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/dsp/window"
)

// MaxTaps bounds the kernel length accepted by [FractionalDelay].
const MaxTaps = 1 << 20

// ErrInvalidDelay is returned for negative, NaN, infinite or oversized delays.
var ErrInvalidDelay = fmt.Errorf("fir: delay must be finite, >= 0 and fit in %d taps: %w", MaxTaps, core.ErrInvalidParameter)

// DesignOption configures fractional delay design.
type DesignOption func(*designConfig)

type designConfig struct {
	window window.Type
}

func defaultDesignConfig() designConfig {
	return designConfig{window: window.TypeHamming}
}

// WithWindow selects the taper applied to the sinc kernel.
// The default is [window.TypeHamming].
func WithWindow(t window.Type) DesignOption {
	return func(c *designConfig) {
		c.window = t
	}
}

// SplitDelay decomposes delay into its integer part and the fractional
// remainder in [0, 1).
func SplitDelay(delay float64) (int, float64) {
	whole := math.Floor(delay)
	return int(whole), delay - whole
}

// TapCount returns the kernel length used for delay: 2*floor(delay)+1.
func TapCount(delay float64) int {
	whole, _ := SplitDelay(delay)
	return 2*whole + 1
}

// ValidateDelay reports whether delay can be realized by [FractionalDelay].
func ValidateDelay(delay float64) error {
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, delay)
	}
	if delay >= float64(MaxTaps/2) {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, delay)
	}
	return nil
}

// FractionalDelay returns the windowed-sinc coefficients that delay a
// signal by delay samples.
//
// The kernel has N = 2*floor(delay)+1 taps centered at tap floor(delay).
// Tap t samples the sinc at t - frac - center and the window at
// (t - frac + 0.5)/N, where frac is the fractional part of delay. A delay
// of 0 yields the identity kernel [1].
func FractionalDelay(delay float64, opts ...DesignOption) ([]float64, error) {
	if err := ValidateDelay(delay); err != nil {
		return nil, err
	}

	cfg := defaultDesignConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !cfg.window.Valid() {
		return nil, fmt.Errorf("fir: window %v: %w", cfg.window, core.ErrInvalidParameter)
	}

	whole, frac := SplitDelay(delay)
	n := 2*whole + 1
	center := float64(n / 2)

	taps := make([]float64, n)
	taper := make([]float64, n)
	for t := range taps {
		x := float64(t) - frac
		taps[t] = core.Sinc(x - center)
		taper[t] = window.Eval(cfg.window, (x+0.5)/float64(n))
	}

	vecmath.MulBlockInPlace(taps, taper)

	return taps, nil
}
