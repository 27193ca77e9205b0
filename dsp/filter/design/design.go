package design

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// defaultQ is the Butterworth quality factor, used when q is unusable.
const defaultQ = 1 / math.Sqrt2

// rbj holds the intermediate terms shared by the cookbook designs.
type rbj struct {
	cosW0 float64
	alpha float64
}

// prewarp computes the cookbook terms for freq and q at sampleRate. It
// reports false when freq is not strictly between 0 and Nyquist or the
// sample rate is unusable.
func prewarp(freq, q, sampleRate float64) (rbj, bool) {
	if !finite(sampleRate) || sampleRate <= 0 || !finite(freq) || freq <= 0 || freq >= sampleRate/2 {
		return rbj{}, false
	}
	if !finite(q) || q <= 0 {
		q = defaultQ
	}
	w0 := 2 * math.Pi * freq / sampleRate
	return rbj{cosW0: math.Cos(w0), alpha: math.Sin(w0) / (2 * q)}, true
}

// Lowpass designs an RBJ second-order lowpass at freq (Hz).
//
// Requests outside (0, Nyquist) or with a bad sample rate return
// [biquad.Identity] so the signal keeps flowing.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}
	b1 := 1 - r.cosW0
	return r.normalize(b1/2, b1, b1/2, 1+r.alpha, 1-r.alpha)
}

// Highpass designs an RBJ second-order highpass at freq (Hz).
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity()
	}
	b1 := -(1 + r.cosW0)
	return r.normalize(-b1/2, b1, -b1/2, 1+r.alpha, 1-r.alpha)
}

// Peak designs an RBJ peaking (bell) section. The gain at freq is
// 10^(gainDB/20); DC and Nyquist stay at unity. Negative gains give the
// mirror-image cut.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, sampleRate)
	if !ok || !finite(gainDB) {
		return biquad.Identity()
	}
	a := math.Pow(10, gainDB/40)
	return r.normalize(
		1+r.alpha*a, -2*r.cosW0, 1-r.alpha*a,
		1+r.alpha/a, 1-r.alpha/a,
	)
}

// normalize divides by a0. Every cookbook design here has a1 = -2cos(w0).
func (r rbj) normalize(b0, b1, b2, a0, a2 float64) biquad.Coefficients {
	if a0 == 0 || !finite(a0) {
		return biquad.Identity()
	}
	inv := 1 / a0
	return biquad.Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: -2 * r.cosW0 * inv,
		A2: a2 * inv,
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
