package eq

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/param"
)

// Parameter IDs.
const (
	ParamLowCutFreq   = "lowcutfreq"
	ParamHighCutFreq  = "highcutfreq"
	ParamPeakFreq     = "peakfreq"
	ParamPeakGain     = "peakgain"
	ParamPeakQuality  = "peakquality"
	ParamLowCutSlope  = "lowcutslope"
	ParamHighCutSlope = "highcutslope"
)

// SlopeChoices are the display names of the four steepness levels.
var SlopeChoices = []string{"12 db/Oct", "24 db/Oct", "36 db/Oct", "48 db/Oct"}

// ParameterLayout returns the controls of the equalizer.
//
// Frequencies use a 0.25 skew so the lower decades get most of the travel.
func ParameterLayout() []param.Spec {
	freq := param.NewRange(MinFrequency, MaxFrequency, 1, 0.25)
	return []param.Spec{
		param.Float(ParamLowCutFreq, "LowCut Freq", freq, MinFrequency),
		param.Float(ParamHighCutFreq, "HighCut Freq", freq, MaxFrequency),
		param.Float(ParamPeakFreq, "Peak Freq", freq, 750),
		param.Float(ParamPeakGain, "Peak Gain", param.NewRange(MinGainDB, MaxGainDB, 0.5, 1), 0),
		param.Float(ParamPeakQuality, "Peak Quality", param.NewRange(MinQuality, MaxQuality, 0.05, 1), 1),
		param.Choice(ParamLowCutSlope, "LowCut Slope", SlopeChoices, int(Slope12)),
		param.Choice(ParamHighCutSlope, "HighCut Slope", SlopeChoices, int(Slope12)),
	}
}

// NewParameterStore builds a store with the equalizer layout.
func NewParameterStore() (*param.Store, error) {
	return param.NewStore(ParameterLayout()...)
}

// bindings caches the parameters read on every update so the audio
// goroutine never touches the store's map.
type bindings struct {
	lowCutFreq   *param.Parameter
	highCutFreq  *param.Parameter
	peakFreq     *param.Parameter
	peakGain     *param.Parameter
	peakQuality  *param.Parameter
	lowCutSlope  *param.Parameter
	highCutSlope *param.Parameter
}

func bind(store *param.Store) (bindings, error) {
	var b bindings
	for _, f := range []struct {
		id  string
		dst **param.Parameter
	}{
		{ParamLowCutFreq, &b.lowCutFreq},
		{ParamHighCutFreq, &b.highCutFreq},
		{ParamPeakFreq, &b.peakFreq},
		{ParamPeakGain, &b.peakGain},
		{ParamPeakQuality, &b.peakQuality},
		{ParamLowCutSlope, &b.lowCutSlope},
		{ParamHighCutSlope, &b.highCutSlope},
	} {
		p, err := store.Parameter(f.id)
		if err != nil {
			return bindings{}, fmt.Errorf("eq: parameter layout: %w", err)
		}
		*f.dst = p
	}
	if err := checkSlopeRange(b.lowCutSlope); err != nil {
		return bindings{}, err
	}
	if err := checkSlopeRange(b.highCutSlope); err != nil {
		return bindings{}, err
	}
	return b, nil
}

// checkSlopeRange rejects slope parameters whose range could yield a level
// the factory cannot build.
func checkSlopeRange(p *param.Parameter) error {
	r := p.Spec().Range
	if r.Min < 0 || r.Max > NumSlopes-1 {
		return fmt.Errorf("%w: %s range [%v, %v]", ErrInvalidSlope, p.ID(), r.Min, r.Max)
	}
	return nil
}

// resolve reads every control with one atomic load each. Values written
// concurrently may mix old and new fields, but never tear.
func (b *bindings) resolve() Settings {
	return Settings{
		PeakFreq:     b.peakFreq.Raw(),
		PeakGainDB:   b.peakGain.Raw(),
		PeakQuality:  b.peakQuality.Raw(),
		LowCutFreq:   b.lowCutFreq.Raw(),
		HighCutFreq:  b.highCutFreq.Raw(),
		LowCutSlope:  Slope(b.lowCutSlope.Index()),
		HighCutSlope: Slope(b.highCutSlope.Index()),
	}
}

// ResolveSettings takes a snapshot of the controls in store.
func ResolveSettings(store *param.Store) (Settings, error) {
	b, err := bind(store)
	if err != nil {
		return Settings{}, err
	}
	return b.resolve(), nil
}

// PublishSettings writes every field of s into store. Each write is snapped
// to the parameter's range and notifies listeners when it changes a value.
func PublishSettings(store *param.Store, s Settings) error {
	if !s.LowCutSlope.Valid() || !s.HighCutSlope.Valid() {
		return fmt.Errorf("%w: levels %d/%d", ErrInvalidSlope, int(s.LowCutSlope), int(s.HighCutSlope))
	}
	return store.Replace(map[string]float64{
		ParamLowCutFreq:   s.LowCutFreq,
		ParamHighCutFreq:  s.HighCutFreq,
		ParamPeakFreq:     s.PeakFreq,
		ParamPeakGain:     s.PeakGainDB,
		ParamPeakQuality:  s.PeakQuality,
		ParamLowCutSlope:  float64(s.LowCutSlope),
		ParamHighCutSlope: float64(s.HighCutSlope),
	})
}
