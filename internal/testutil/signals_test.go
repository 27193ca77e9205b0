package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	x := DeterministicSine(1000, 48000, 0.5, 48)
	if x[0] != 0 {
		t.Fatalf("x[0] = %v, want 0", x[0])
	}
	if math.Abs(x[12]-0.5) > 1e-12 {
		t.Fatalf("quarter period = %v, want 0.5", x[12])
	}
	if p := PeakAbs(x); math.Abs(p-0.5) > 1e-12 {
		t.Fatalf("PeakAbs = %v, want 0.5", p)
	}
}

func TestDeterministicNoiseRepeatable(t *testing.T) {
	a := DeterministicNoise(7, 1, 64)
	b := DeterministicNoise(7, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)
	if PeakAbs(a) > 1 {
		t.Fatalf("noise exceeds amplitude: %v", PeakAbs(a))
	}
}

func TestImpulseAndBlocks(t *testing.T) {
	x := Impulse(10, 3)
	blocks := Blocks(x, 4)
	if len(blocks) != 3 || len(blocks[2]) != 2 {
		t.Fatalf("unexpected blocks: %v", blocks)
	}
	if blocks[0][3] != 1 {
		t.Fatal("impulse not at position 3")
	}
	blocks[1][0] = 5
	if x[4] != 5 {
		t.Fatal("blocks should alias the input")
	}
	if Blocks(x, 0) != nil {
		t.Fatal("non-positive block size should return nil")
	}
	if len(Impulse(2, 5)) != 2 || PeakAbs(Impulse(2, 5)) != 0 {
		t.Fatal("out-of-range impulse should be silent")
	}
}

func TestMaxStep(t *testing.T) {
	if s := MaxStep([]float64{0, 0.5, 0.25, 1}); s != 0.75 {
		t.Fatalf("MaxStep = %v, want 0.75", s)
	}
	if MaxStep(nil) != 0 {
		t.Fatal("MaxStep(nil) should be 0")
	}
}
