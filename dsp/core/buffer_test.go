package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	src := []float32{0.5, -0.5, 0.25, -0.25, 1, -1}
	planar := NewPlanar(2, 4)

	frames := Deinterleave(planar, src)
	if frames != 3 {
		t.Fatalf("frames = %d, want 3", frames)
	}
	if planar[0][1] != 0.25 || planar[1][2] != -1 {
		t.Fatalf("unexpected planar data: %v", planar)
	}

	out := make([]float32, len(src))
	Interleave(out, planar, frames)
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], src[i])
		}
	}
}

func TestDeinterleaveBoundedByDestination(t *testing.T) {
	planar := NewPlanar(1, 2)
	if n := Deinterleave(planar, []float32{1, 2, 3, 4}); n != 2 {
		t.Fatalf("frames = %d, want 2", n)
	}
	if n := Deinterleave(nil, []float32{1}); n != 0 {
		t.Fatalf("frames = %d, want 0", n)
	}
}
