package eq

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignFiltersActiveCountsAndFillers(t *testing.T) {
	for level := range NumSlopes {
		s := DefaultSettings()
		s.LowCutFreq = 100
		s.HighCutFreq = 8000
		s.LowCutSlope = Slope(level)
		s.HighCutSlope = Slope(NumSlopes - 1 - level)

		d := NewDesign(s, 48000)
		assert.Equal(t, level+1, d.LowCutActive)
		assert.Equal(t, NumSlopes-level, d.HighCutActive)

		for i := range biquad.MaxSections {
			assert.Equal(t, i >= d.LowCutActive, d.LowCut[i].IsIdentity(), "low-cut section %d", i)
			assert.Equal(t, i >= d.HighCutActive, d.HighCut[i].IsIdentity(), "high-cut section %d", i)
		}
	}
}

func TestDesignFiltersIsPure(t *testing.T) {
	s := Settings{
		PeakFreq: 2500, PeakGainDB: -9, PeakQuality: 3,
		LowCutFreq: 60, HighCutFreq: 15000,
		LowCutSlope: Slope48, HighCutSlope: Slope36,
	}
	a := NewDesign(s, 44100)
	b := NewDesign(s, 44100)
	assert.Equal(t, a, b)

	// Overwriting a used buffer gives the same result as a fresh one.
	dirty := NewDesign(DefaultSettings(), 96000)
	DesignFilters(&dirty, s, 44100)
	assert.Equal(t, a, dirty)
}

func TestDesignFiltersClampsRequests(t *testing.T) {
	base := DefaultSettings()

	tests := []struct {
		name     string
		sr       float64
		mutate   func(*Settings)
		expected func(*Settings)
	}{
		{"high-cut above audible range", 48000,
			func(s *Settings) { s.HighCutFreq = 30000 },
			func(s *Settings) { s.HighCutFreq = MaxFrequency }},
		{"high-cut above safe Nyquist", 32000,
			func(s *Settings) { s.HighCutFreq = 20000 },
			func(s *Settings) { s.HighCutFreq = 0.49 * 32000 }},
		{"peak at Nyquist", 22050,
			func(s *Settings) { s.PeakFreq = 11025 },
			func(s *Settings) { s.PeakFreq = 0.49 * 22050 }},
		{"low-cut below audible range", 48000,
			func(s *Settings) { s.LowCutFreq = 1 },
			func(s *Settings) { s.LowCutFreq = MinFrequency }},
		{"NaN frequency", 48000,
			func(s *Settings) { s.PeakFreq = math.NaN() },
			func(s *Settings) { s.PeakFreq = MinFrequency }},
		{"gain", 48000,
			func(s *Settings) { s.PeakGainDB = 40 },
			func(s *Settings) { s.PeakGainDB = MaxGainDB }},
		{"non-positive quality", 48000,
			func(s *Settings) { s.PeakQuality = 0; s.PeakGainDB = 6 },
			func(s *Settings) { s.PeakQuality = MinQuality; s.PeakGainDB = 6 }},
		{"NaN quality", 48000,
			func(s *Settings) { s.PeakQuality = math.NaN(); s.PeakGainDB = 6 },
			func(s *Settings) { s.PeakQuality = 1; s.PeakGainDB = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, want := base, base
			tt.mutate(&got)
			tt.expected(&want)

			gd := NewDesign(got, tt.sr)
			assert.Equal(t, NewDesign(want, tt.sr), gd)
			assert.True(t, gd.IsStable())
		})
	}
}

func TestDesignFiltersPanicsOnInvalidSlope(t *testing.T) {
	s := DefaultSettings()
	s.LowCutSlope = 4
	assert.Panics(t, func() { NewDesign(s, 48000) })

	s = DefaultSettings()
	s.HighCutSlope = -1
	assert.Panics(t, func() { NewDesign(s, 48000) })
}

func TestDesignFiltersDoesNotAllocate(t *testing.T) {
	var d Design
	s := DefaultSettings()
	s.LowCutSlope = Slope48
	s.HighCutSlope = Slope48
	allocs := testing.AllocsPerRun(100, func() {
		DesignFilters(&d, s, 48000)
	})
	assert.Zero(t, allocs)
}

func TestDesignStableAcrossControlSpace(t *testing.T) {
	freqs := LogFrequencies(48, MinFrequency, MaxFrequency)
	for _, sr := range []float64{22050, 44100, 48000, 96000, 192000} {
		for level := range NumSlopes {
			for _, f := range []float64{20, 50, 200, 1000, 5000, 15000, 20000} {
				for _, gain := range []float64{MinGainDB, 0, MaxGainDB} {
					for _, q := range []float64{MinQuality, 1, MaxQuality} {
						s := Settings{
							PeakFreq: f, PeakGainDB: gain, PeakQuality: q,
							LowCutFreq: f, HighCutFreq: f,
							LowCutSlope: Slope(level), HighCutSlope: Slope(level),
						}
						d := NewDesign(s, sr)
						require.True(t, d.IsStable(), "sr=%v level=%d f=%v gain=%v q=%v", sr, level, f, gain, q)
						for _, probe := range freqs {
							m := d.Magnitude(probe)
							require.False(t, math.IsNaN(m) || math.IsInf(m, 0),
								"sr=%v level=%d f=%v: magnitude %v at %v Hz", sr, level, f, m, probe)
						}
					}
				}
			}
		}
	}
}
