package eq

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
)

// Position names a stage of the signal path.
type Position int

const (
	LowCut Position = iota
	Peak
	HighCut
)

// Positions lists the stages in processing order.
var Positions = [...]Position{LowCut, Peak, HighCut}

func (p Position) String() string {
	switch p {
	case LowCut:
		return "low-cut"
	case Peak:
		return "peak"
	case HighCut:
		return "high-cut"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// MonoPath is the per-channel filter graph: low-cut cascade, peak section,
// high-cut cascade, in series.
//
// All sections are allocated with the path. Until the first design is
// applied every stage is bypassed, so a fresh path passes audio through.
type MonoPath struct {
	lowCut  biquad.Chain
	peak    biquad.Section
	highCut biquad.Chain

	sampleRate   float64
	maxBlockSize int
}

// NewMonoPath returns a bypassed path holding identity coefficients.
func NewMonoPath() *MonoPath {
	m := &MonoPath{peak: biquad.Section{Coefficients: biquad.Identity()}}
	sets := identitySet()
	m.lowCut.Configure(&sets, 0)
	m.highCut.Configure(&sets, 0)
	return m
}

func identitySet() [biquad.MaxSections]biquad.Coefficients {
	var sets [biquad.MaxSections]biquad.Coefficients
	for i := range sets {
		sets[i] = biquad.Identity()
	}
	return sets
}

// Prepare records the stream format and clears every section's history.
// It is called before playback starts and whenever the host changes the
// sample rate or block size.
func (m *MonoPath) Prepare(cfg core.ProcessorConfig) {
	m.sampleRate = cfg.SampleRate
	m.maxBlockSize = cfg.BlockSize
	m.Reset()
}

// Reset clears the history of every section without touching coefficients.
func (m *MonoPath) Reset() {
	m.lowCut.Reset()
	m.peak.Reset()
	m.highCut.Reset()
}

// ProcessSample runs one sample through low-cut, peak and high-cut.
func (m *MonoPath) ProcessSample(x float64) float64 {
	x = m.lowCut.ProcessSample(x)
	x = m.peak.ProcessSample(x)
	return m.highCut.ProcessSample(x)
}

// ProcessBlock filters buf in place. Zero-alloc and lock-free.
//
// Stages run one after another over the whole block; since every section
// is causal and linear this matches per-sample processing.
func (m *MonoPath) ProcessBlock(buf []float64) {
	m.lowCut.ProcessBlock(buf)
	m.peak.ProcessBlock(buf)
	m.highCut.ProcessBlock(buf)
}

// ApplyDesign copies d into the path: peak first, then the low-cut and
// high-cut cascades. History is preserved.
func (m *MonoPath) ApplyDesign(d *Design) {
	m.peak.SetCoefficients(d.Peak)
	m.peak.SetEnabled(true)
	m.lowCut.Configure(&d.LowCut, d.LowCutActive)
	m.highCut.Configure(&d.HighCut, d.HighCutActive)
}

// ApplySettings designs s at the prepared sample rate and applies it.
// It must not run concurrently with ProcessBlock; use a Coordinator to
// drive paths from another goroutine.
func (m *MonoPath) ApplySettings(s Settings) {
	var d Design
	DesignFilters(&d, s, m.sampleRate)
	m.ApplyDesign(&d)
}

// SampleRate returns the rate passed to the last Prepare.
func (m *MonoPath) SampleRate() float64 { return m.sampleRate }

// MaxBlockSize returns the block size passed to the last Prepare.
func (m *MonoPath) MaxBlockSize() int { return m.maxBlockSize }

// LowCut returns the low-cut cascade.
func (m *MonoPath) LowCut() *biquad.Chain { return &m.lowCut }

// Peak returns the peak section.
func (m *MonoPath) Peak() *biquad.Section { return &m.peak }

// HighCut returns the high-cut cascade.
func (m *MonoPath) HighCut() *biquad.Chain { return &m.highCut }

// ActiveSections returns how many biquads are enabled at pos.
func (m *MonoPath) ActiveSections(pos Position) int {
	switch pos {
	case LowCut:
		return m.lowCut.Active()
	case Peak:
		if m.peak.Enabled() {
			return 1
		}
		return 0
	case HighCut:
		return m.highCut.Active()
	default:
		return 0
	}
}

// StageMagnitude returns the linear gain of one stage at freqHz.
// Bypassed sections contribute unity.
func (m *MonoPath) StageMagnitude(pos Position, freqHz float64) float64 {
	switch pos {
	case LowCut:
		return m.lowCut.Magnitude(freqHz, m.sampleRate)
	case Peak:
		return m.peak.Magnitude(freqHz, m.sampleRate)
	case HighCut:
		return m.highCut.Magnitude(freqHz, m.sampleRate)
	default:
		return 1
	}
}

// Magnitude returns the linear gain of the whole path at freqHz.
func (m *MonoPath) Magnitude(freqHz float64) float64 {
	g := 1.0
	for _, pos := range Positions {
		g *= m.StageMagnitude(pos, freqHz)
	}
	return g
}

// MagnitudeDB returns the path gain at freqHz in dB.
func (m *MonoPath) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(m.Magnitude(freqHz))
}
