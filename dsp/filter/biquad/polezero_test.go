package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestCoefficientsPoles_ConjugatePair(t *testing.T) {
	p1 := complex(0.72, 0.19)
	p2 := cmplx.Conj(p1)
	z1 := complex(0.31, 0.44)
	z2 := cmplx.Conj(z1)

	b0 := 2.3
	c := Coefficients{
		B0: b0,
		B1: -b0 * real(z1+z2),
		B2: b0 * real(z1*z2),
		A1: -real(p1 + p2),
		A2: real(p1 * p2),
	}

	if !unorderedRootsClose(c.Poles(), p1, p2, 1e-12) {
		t.Fatalf("unexpected poles: got=%v want={%v,%v}", c.Poles(), p1, p2)
	}
	if !unorderedRootsClose(c.Zeros(), z1, z2, 1e-12) {
		t.Fatalf("unexpected zeros: got=%v want={%v,%v}", c.Zeros(), z1, z2)
	}
	if !almostEqual(c.PoleRadius(), cmplx.Abs(p1), 1e-12) {
		t.Fatalf("PoleRadius = %v, want %v", c.PoleRadius(), cmplx.Abs(p1))
	}
}

func TestIsStable(t *testing.T) {
	if !lowpassLike().IsStable() {
		t.Fatal("lowpass-like section should be stable")
	}
	if !Identity().IsStable() {
		t.Fatal("identity should be stable")
	}

	unstable := Coefficients{B0: 1, A1: -2.1, A2: 1.1} // real poles at 1 and 1.1
	if unstable.IsStable() {
		t.Fatalf("poles %v reported stable", unstable.Poles())
	}
	if (Coefficients{B0: 1, A1: math.NaN()}).IsStable() {
		t.Fatal("NaN coefficients reported stable")
	}
}

func TestChain_IsStableIgnoresBypassed(t *testing.T) {
	unstable := Coefficients{B0: 1, A1: -2.1, A2: 1.1}
	c := NewChain(nil)
	c.Configure(fullSet(lowpassLike(), unstable), 1)
	if !c.IsStable() {
		t.Fatal("bypassed unstable section should not affect chain stability")
	}

	c.Configure(fullSet(lowpassLike(), unstable), 2)
	if c.IsStable() {
		t.Fatal("enabled unstable section should make the chain unstable")
	}
}

func unorderedRootsClose(got [2]complex128, want1, want2 complex128, tol float64) bool {
	return (cmplx.Abs(got[0]-want1) <= tol && cmplx.Abs(got[1]-want2) <= tol) ||
		(cmplx.Abs(got[0]-want2) <= tol && cmplx.Abs(got[1]-want1) <= tol)
}
