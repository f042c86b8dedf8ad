package core

import (
	"errors"
	"math"
	"testing"
)

func TestSinc(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "origin", x: 0, want: 1},
		{name: "inside tolerance", x: 5e-9, want: 1},
		{name: "negative inside tolerance", x: -1e-8, want: 1},
		{name: "integer zero crossing", x: 2, want: 0},
		{name: "half", x: 0.5, want: 2 / math.Pi},
		{name: "symmetric", x: -0.5, want: 2 / math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sinc(tt.x)
			if math.Abs(got-tt.want) > 1e-15 {
				t.Fatalf("Sinc(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestSincOutsideToleranceIsNotForced(t *testing.T) {
	if got := Sinc(1e-6); got == 1 {
		t.Fatal("Sinc(1e-6) should be evaluated, not filled")
	}
}

func TestSum(t *testing.T) {
	if got := Sum(nil); got != 0 {
		t.Fatalf("Sum(nil) = %v, want 0", got)
	}
	if got := Sum([]float64{0.25, 0.5, 0.25}); got != 1 {
		t.Fatalf("Sum = %v, want 1", got)
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	if err := DefaultProcessorConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}

	bad := []ProcessorConfig{
		{SampleRate: 0, BlockSize: 1},
		{SampleRate: math.NaN(), BlockSize: 1},
		{SampleRate: 48000, BlockSize: 0},
	}
	for _, cfg := range bad {
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("Validate(%+v) = %v, want ErrInvalidParameter", cfg, err)
		}
	}
}
