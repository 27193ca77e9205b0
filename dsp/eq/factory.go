package eq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
	"github.com/cwbudde/algo-eq/dsp/filter/design/pass"
)

// Design is the full set of coefficients for one settings snapshot at one
// sample rate. It is a plain value: copying it copies every coefficient.
//
// Cut arrays are always fully populated; sections at and beyond the active
// count hold the identity design.
type Design struct {
	SampleRate float64

	Peak biquad.Coefficients

	LowCut       [biquad.MaxSections]biquad.Coefficients
	LowCutActive int

	HighCut       [biquad.MaxSections]biquad.Coefficients
	HighCutActive int
}

// NewDesign computes the design for s at sampleRate.
func NewDesign(s Settings, sampleRate float64) Design {
	var d Design
	DesignFilters(&d, s, sampleRate)
	return d
}

// DesignFilters computes the design for s at sampleRate into dst without
// allocating.
//
// Out-of-range controls are clamped rather than rejected: frequencies to
// [MinFrequency, min(MaxFrequency, 0.49*sampleRate)], quality to
// [MinQuality, MaxQuality] and gain to [MinGainDB, MaxGainDB]. A slope level
// outside 0..3 is a programming error and panics.
func DesignFilters(dst *Design, s Settings, sampleRate float64) {
	if !s.LowCutSlope.Valid() || !s.HighCutSlope.Valid() {
		panic(fmt.Sprintf("eq: slope levels %d/%d outside [0, %d]", int(s.LowCutSlope), int(s.HighCutSlope), NumSlopes-1))
	}

	dst.SampleRate = sampleRate

	dst.Peak = design.Peak(
		clampFrequency(s.PeakFreq, sampleRate),
		clampFinite(s.PeakGainDB, MinGainDB, MaxGainDB, 0),
		clampFinite(s.PeakQuality, MinQuality, MaxQuality, 1),
		sampleRate,
	)

	dst.LowCutActive = designCut(&dst.LowCut, pass.ButterworthHPInto,
		clampFrequency(s.LowCutFreq, sampleRate), s.LowCutSlope, sampleRate)
	dst.HighCutActive = designCut(&dst.HighCut, pass.ButterworthLPInto,
		clampFrequency(s.HighCutFreq, sampleRate), s.HighCutSlope, sampleRate)
}

type cascadeDesigner func(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) int

// designCut writes the first slope.Sections() Butterworth sections and pads
// the rest with identity. Each higher slope level enables every lower
// section as well.
func designCut(dst *[biquad.MaxSections]biquad.Coefficients, into cascadeDesigner, freq float64, slope Slope, sampleRate float64) int {
	n := into(dst[:], freq, slope.Order(), sampleRate)
	for i := n; i < len(dst); i++ {
		dst[i] = biquad.Identity()
	}
	return n
}

// clampFrequency limits f to the audible range and to a safe sub-Nyquist value.
func clampFrequency(f, sampleRate float64) float64 {
	hi := math.Min(MaxFrequency, maxCutoffRatio*sampleRate)
	if math.IsNaN(f) {
		f = MinFrequency
	}
	if hi < MinFrequency {
		return hi
	}
	return core.Clamp(f, MinFrequency, hi)
}

func clampFinite(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return core.Clamp(v, lo, hi)
}

// IsStable reports whether every section the design enables has its poles
// strictly inside the unit circle.
func (d *Design) IsStable() bool {
	if !d.Peak.IsStable() {
		return false
	}
	for i := range d.LowCutActive {
		if !d.LowCut[i].IsStable() {
			return false
		}
	}
	for i := range d.HighCutActive {
		if !d.HighCut[i].IsStable() {
			return false
		}
	}
	return true
}
