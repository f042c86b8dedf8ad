package fir

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/dsp/window"
	"github.com/cwbudde/algo-fracdelay/internal/testutil"
)

func mustDesign(t testing.TB, delay float64, opts ...DesignOption) []float64 {
	t.Helper()
	taps, err := FractionalDelay(delay, opts...)
	if err != nil {
		t.Fatalf("FractionalDelay(%v): %v", delay, err)
	}
	return taps
}

func TestFractionalDelay_ZeroIsIdentity(t *testing.T) {
	taps := mustDesign(t, 0)
	if len(taps) != 1 || taps[0] != 1 {
		t.Fatalf("FractionalDelay(0) = %v, want [1]", taps)
	}
}

func TestFractionalDelay_Length(t *testing.T) {
	tests := []struct {
		delay float64
		want  int
	}{
		{0, 1},
		{0.999, 1},
		{1, 3},
		{2.5, 5},
		{7.816, 15},
		{49.99, 99},
	}

	for _, tt := range tests {
		taps := mustDesign(t, tt.delay)
		if len(taps) != tt.want || TapCount(tt.delay) != tt.want {
			t.Fatalf("delay %v: len %d, TapCount %d, want %d", tt.delay, len(taps), TapCount(tt.delay), tt.want)
		}
		if len(taps)%2 != 1 {
			t.Fatalf("delay %v: even length %d", tt.delay, len(taps))
		}
	}
}

func TestFractionalDelay_ReferenceTaps(t *testing.T) {
	tests := []struct {
		delay float64
		want  []float64
	}{
		{2.5, []float64{
			0.010185916357881304, -0.08442685530493836, 0.5806913358867165,
			0.5806913358867166, -0.08442685530493839,
		}},
		{1.25, []float64{-0.025502056431469255, 0.8448313392923283, 0.16205693690827916}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.delay), func(t *testing.T) {
			testutil.RequireSliceNearlyEqual(t, mustDesign(t, tt.delay), tt.want, 1e-14)
		})
	}
}

func TestFractionalDelay_IntegerDelayIsUnitTapAtCenter(t *testing.T) {
	for d := 0; d < 50; d++ {
		taps := mustDesign(t, float64(d))
		if taps[d] != 1 {
			t.Fatalf("delay %d: center tap %v, want 1", d, taps[d])
		}
		for i, c := range taps {
			if i != d && math.Abs(c) > 1e-15 {
				t.Fatalf("delay %d: tap %d = %v, want ~0", d, i, c)
			}
		}
	}
}

func TestFractionalDelay_UnityDCGain(t *testing.T) {
	check := func(delay float64) {
		t.Helper()
		if sum := core.Sum(mustDesign(t, delay)); math.Abs(sum-1) > 1e-3 {
			t.Fatalf("delay %v: DC gain %v, want 1 +/- 1e-3", delay, sum)
		}
	}

	for d := 0; d < 50; d++ {
		check(float64(d))
	}
	// Short fractional kernels (delay < 3) are not gain-normalized.
	for d := 3.0; d < 50; d += 0.05 {
		check(d)
	}
}

func TestFractionalDelay_HalfSampleIsSymmetric(t *testing.T) {
	// A half-sample shift of a length-N kernel is mirror symmetric about
	// (N-1)/2 + 0.5, so tap k matches tap N-k for k >= 1.
	taps := mustDesign(t, 6.5)
	n := len(taps)
	for k := 1; k < n; k++ {
		if math.Abs(taps[k]-taps[n-k]) > 1e-15 {
			t.Fatalf("tap %d = %v, tap %d = %v", k, taps[k], n-k, taps[n-k])
		}
	}
}

func TestFractionalDelay_WindowOption(t *testing.T) {
	delay := 4.3
	rect := mustDesign(t, delay, WithWindow(window.TypeRectangular))
	_, frac := SplitDelay(delay)
	for i, c := range rect {
		want := core.Sinc(float64(i) - frac - 4)
		if c != want {
			t.Fatalf("rectangular tap %d = %v, want plain sinc %v", i, c, want)
		}
	}

	hamming := mustDesign(t, delay)
	explicit := mustDesign(t, delay, WithWindow(window.TypeHamming))
	testutil.RequireBitIdentical(t, explicit, hamming)

	blackman := mustDesign(t, delay, WithWindow(window.TypeBlackman))
	if blackman[0] == hamming[0] {
		t.Fatal("window option had no effect")
	}

	if _, err := FractionalDelay(delay, WithWindow(window.Type(99))); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("unknown window: err = %v, want ErrInvalidParameter", err)
	}
}

func TestFractionalDelay_Invalid(t *testing.T) {
	for _, delay := range []float64{-1, -1e-12, math.NaN(), math.Inf(1), math.Inf(-1), float64(MaxTaps)} {
		taps, err := FractionalDelay(delay)
		if taps != nil {
			t.Fatalf("delay %v: expected nil taps", delay)
		}
		if !errors.Is(err, ErrInvalidDelay) || !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("delay %v: err = %v, want ErrInvalidDelay", delay, err)
		}
	}
}

func TestSplitDelay(t *testing.T) {
	whole, frac := SplitDelay(7.816)
	if whole != 7 || math.Abs(frac-0.816) > 1e-12 {
		t.Fatalf("SplitDelay(7.816) = %d, %v", whole, frac)
	}
	whole, frac = SplitDelay(3)
	if whole != 3 || frac != 0 {
		t.Fatalf("SplitDelay(3) = %d, %v", whole, frac)
	}
}

func TestFractionalDelay_ImpulsePeakAtIntegerDelay(t *testing.T) {
	const d = 3
	f := mustNew(t, mustDesign(t, d))
	impulse := testutil.Impulse(16, 0)
	out := make([]float64, len(impulse))
	for i, x := range impulse {
		out[i] = f.ProcessSample(x)
	}
	if got := testutil.ArgMaxAbs(out); got != d {
		t.Fatalf("impulse peak at %d, want %d (out=%v)", got, d, out)
	}
	if math.Abs(out[d]-1) > 1e-12 {
		t.Fatalf("peak = %v, want ~1", out[d])
	}
}

func TestFractionalDelay_PhaseDelayTracksDelay(t *testing.T) {
	for _, delay := range []float64{3.5, 7.816, 12.25, 20} {
		f := mustNew(t, mustDesign(t, delay))
		if got := f.PhaseDelay(100, 48000); math.Abs(got-delay) > 0.05 {
			t.Fatalf("delay %v: phase delay at 100 Hz = %v", delay, got)
		}
	}
}
