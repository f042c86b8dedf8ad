package testutil

import (
	"math"
	"testing"
)

func TestSineSum(t *testing.T) {
	s := SineSum([]float64{1000, 2000}, 48000, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	want := math.Sin(2*math.Pi*1000/48000*5) + math.Sin(2*math.Pi*2000/48000*5)
	if math.Abs(s[5]-want) > 1e-15 {
		t.Fatalf("s[5] = %v, want %v", s[5], want)
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	if len(imp) != 8 {
		t.Fatalf("len = %d, want 8", len(imp))
	}
	for i, v := range imp {
		if i == 3 {
			if v != 1 {
				t.Fatalf("imp[3] = %v, want 1", v)
			}
		} else if v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
}

func TestImpulseOutOfBounds(t *testing.T) {
	for _, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatal("out-of-bounds impulse should be all zero")
		}
	}
}

func TestDC(t *testing.T) {
	for i, v := range DC(0.25, 5) {
		if v != 0.25 {
			t.Fatalf("dc[%d] = %v, want 0.25", i, v)
		}
	}
}

func TestArgMaxAbs(t *testing.T) {
	if got := ArgMaxAbs(nil); got != -1 {
		t.Fatalf("ArgMaxAbs(nil) = %d, want -1", got)
	}
	if got := ArgMaxAbs([]float64{0.1, -0.9, 0.5}); got != 1 {
		t.Fatalf("ArgMaxAbs = %d, want 1", got)
	}
}
