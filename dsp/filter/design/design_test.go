package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	return c.Magnitude(freq, sr)
}

func TestBiquadDesigners_BasicResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0
	q := 1 / math.Sqrt2

	lp := Lowpass(f, q, sr)
	if !(mag(lp, 100, sr) > mag(lp, 10000, sr)) {
		t.Fatal("lowpass shape check failed")
	}
	if !almostEqual(lp.MagnitudeDB(f, sr), -3.0103, 0.01) {
		t.Fatalf("lowpass at cutoff = %.4f dB, want -3.01", lp.MagnitudeDB(f, sr))
	}
	if !almostEqual(mag(lp, 0, sr), 1, 1e-12) {
		t.Fatalf("lowpass DC gain = %v, want 1", mag(lp, 0, sr))
	}

	hp := Highpass(f, q, sr)
	if !(mag(hp, 10000, sr) > mag(hp, 100, sr)) {
		t.Fatal("highpass shape check failed")
	}
	if !almostEqual(hp.MagnitudeDB(f, sr), -3.0103, 0.01) {
		t.Fatalf("highpass at cutoff = %.4f dB, want -3.01", hp.MagnitudeDB(f, sr))
	}
	if !almostEqual(mag(hp, sr/2, sr), 1, 1e-9) {
		t.Fatalf("highpass Nyquist gain = %v, want 1", mag(hp, sr/2, sr))
	}
}

func TestPeak_CentreGain(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000} {
		for _, gain := range []float64{-24, -6, 0, 6, 12, 24} {
			c := Peak(1000, gain, 1, sr)
			if got := c.MagnitudeDB(1000, sr); !almostEqual(got, gain, 1e-6) {
				t.Fatalf("sr=%v gain=%v: centre = %.12f dB", sr, gain, got)
			}
		}
	}
}

func TestPeak_ZeroGainIsUnity(t *testing.T) {
	c := Peak(750, 0, 1, 44100)
	for _, f := range []float64{20, 750, 5000, 20000} {
		if !almostEqual(mag(c, f, 44100), 1, 1e-12) {
			t.Fatalf("0 dB peak at %v Hz = %v, want 1", f, mag(c, f, 44100))
		}
	}
}

func TestPeak_SymmetricBoostCut(t *testing.T) {
	sr := 48000.0
	up := Peak(2000, 9, 2, sr)
	down := Peak(2000, -9, 2, sr)
	for _, f := range []float64{200, 1000, 2000, 4000, 12000} {
		if !almostEqual(up.MagnitudeDB(f, sr), -down.MagnitudeDB(f, sr), 1e-9) {
			t.Fatalf("freq %v: boost %.6f dB, cut %.6f dB", f, up.MagnitudeDB(f, sr), down.MagnitudeDB(f, sr))
		}
	}
}

func TestDesigners_InvalidInputsReturnIdentity(t *testing.T) {
	id := biquad.Identity()
	cases := []biquad.Coefficients{
		Lowpass(0, 1, 48000),
		Lowpass(24000, 1, 48000),
		Highpass(-5, 1, 48000),
		Highpass(1000, 1, 0),
		Peak(1000, 6, 1, math.NaN()),
		Peak(30000, 6, 1, 48000),
		Peak(1000, math.Inf(1), 1, 48000),
	}
	for i, c := range cases {
		if c != id {
			t.Fatalf("case %d: got %+v, want identity", i, c)
		}
	}
}

func TestDesigners_NonPositiveQUsesButterworthQ(t *testing.T) {
	sr := 48000.0
	if Lowpass(1000, 0, sr) != Lowpass(1000, defaultQ, sr) {
		t.Fatal("q=0 should fall back to 1/sqrt(2)")
	}
	if Peak(1000, 3, -1, sr) != Peak(1000, 3, defaultQ, sr) {
		t.Fatal("negative q should fall back to 1/sqrt(2)")
	}
}

func TestDesigners_Stable(t *testing.T) {
	for _, sr := range []float64{22050, 44100, 48000, 96000} {
		for _, f := range []float64{20, 100, 1000, 10000, 0.49 * sr} {
			for _, q := range []float64{0.1, 0.707, 1, 10} {
				for _, c := range []biquad.Coefficients{
					Lowpass(f, q, sr),
					Highpass(f, q, sr),
					Peak(f, 24, q, sr),
					Peak(f, -24, q, sr),
				} {
					if !c.IsStable() {
						t.Fatalf("sr=%v f=%v q=%v: unstable %+v", sr, f, q, c)
					}
				}
			}
		}
	}
}
