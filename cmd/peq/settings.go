package main

import (
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/preset"
)

// settingsFlags are the per-command equalizer controls. Values start from
// the preset (or the defaults) and only flags set on the command line
// override them.
type settingsFlags struct {
	preset string

	flags        *pflag.FlagSet
	peakFreq     float64
	peakGain     float64
	peakQuality  float64
	lowCut       float64
	highCut      float64
	lowCutSlope  int
	highCutSlope int
}

func addSettingsFlags(fs *pflag.FlagSet) *settingsFlags {
	d := eq.DefaultSettings()
	f := &settingsFlags{flags: fs}
	fs.StringVar(&f.preset, "preset", "", "preset file to start from")
	fs.Float64Var(&f.peakFreq, "peak-freq", d.PeakFreq, "peak centre frequency in Hz")
	fs.Float64Var(&f.peakGain, "peak-gain", d.PeakGainDB, "peak gain in dB")
	fs.Float64Var(&f.peakQuality, "peak-quality", d.PeakQuality, "peak quality factor")
	fs.Float64Var(&f.lowCut, "low-cut", d.LowCutFreq, "low-cut frequency in Hz")
	fs.Float64Var(&f.highCut, "high-cut", d.HighCutFreq, "high-cut frequency in Hz")
	fs.IntVar(&f.lowCutSlope, "low-cut-slope", d.LowCutSlope.DBPerOctave(), "low-cut slope in dB/oct (12, 24, 36, 48)")
	fs.IntVar(&f.highCutSlope, "high-cut-slope", d.HighCutSlope.DBPerOctave(), "high-cut slope in dB/oct (12, 24, 36, 48)")
	return f
}

// presetPath returns the --preset flag, or fallback when it is unset.
func (f *settingsFlags) presetPath(fallback string) string {
	if f.preset != "" {
		return f.preset
	}
	return fallback
}

// resolve returns the preset (or fallback) with command-line overrides
// applied and validated.
func (f *settingsFlags) resolve(fallback string) (eq.Settings, error) {
	s := eq.DefaultSettings()
	if path := f.presetPath(fallback); path != "" {
		var err error
		if s, err = preset.LoadFile(path); err != nil {
			return eq.Settings{}, err
		}
	}

	changed := f.flags.Changed
	if changed("peak-freq") {
		s.PeakFreq = f.peakFreq
	}
	if changed("peak-gain") {
		s.PeakGainDB = f.peakGain
	}
	if changed("peak-quality") {
		s.PeakQuality = f.peakQuality
	}
	if changed("low-cut") {
		s.LowCutFreq = f.lowCut
	}
	if changed("high-cut") {
		s.HighCutFreq = f.highCut
	}
	if changed("low-cut-slope") {
		slope, err := eq.SlopeFromDBPerOctave(f.lowCutSlope)
		if err != nil {
			return eq.Settings{}, err
		}
		s.LowCutSlope = slope
	}
	if changed("high-cut-slope") {
		slope, err := eq.SlopeFromDBPerOctave(f.highCutSlope)
		if err != nil {
			return eq.Settings{}, err
		}
		s.HighCutSlope = slope
	}

	return s, s.Validate()
}
