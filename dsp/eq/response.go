package eq

import (
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// LogFrequencies returns n frequencies spaced evenly on a log axis from lo
// to hi inclusive.
func LogFrequencies(n int, lo, hi float64) []float64 {
	if n <= 0 || !(lo > 0) || !(hi > lo) {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	return out
}

// StageMagnitude returns the linear gain of one stage at freqHz. Sections
// beyond a cascade's active count contribute unity.
func (d *Design) StageMagnitude(pos Position, freqHz float64) float64 {
	switch pos {
	case LowCut:
		g := 1.0
		for i := range d.LowCutActive {
			g *= d.LowCut[i].Magnitude(freqHz, d.SampleRate)
		}
		return g
	case Peak:
		return d.Peak.Magnitude(freqHz, d.SampleRate)
	case HighCut:
		g := 1.0
		for i := range d.HighCutActive {
			g *= d.HighCut[i].Magnitude(freqHz, d.SampleRate)
		}
		return g
	default:
		return 1
	}
}

// Magnitude returns the combined linear gain at freqHz.
func (d *Design) Magnitude(freqHz float64) float64 {
	g := 1.0
	for _, pos := range Positions {
		g *= d.StageMagnitude(pos, freqHz)
	}
	return g
}

// MagnitudeDB returns the combined gain at freqHz in dB.
func (d *Design) MagnitudeDB(freqHz float64) float64 {
	return core.LinearToDB(d.Magnitude(freqHz))
}

// ResponseCurve fills dst with the design's gain in dB at each frequency,
// reusing dst's capacity, and returns it.
func ResponseCurve(dst []float64, d *Design, freqs []float64) []float64 {
	dst = core.EnsureLen(dst, len(freqs))
	for i, f := range freqs {
		dst[i] = d.MagnitudeDB(f)
	}
	return dst
}
