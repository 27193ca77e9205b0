package eq

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSlope is returned for steepness levels outside 0..3.
	ErrInvalidSlope = errors.New("eq: invalid slope")
	// ErrInvalidFrequency is returned for frequencies outside the audible range.
	ErrInvalidFrequency = errors.New("eq: invalid frequency")
	// ErrInvalidQuality is returned for non-positive or out-of-range quality.
	ErrInvalidQuality = errors.New("eq: invalid quality")
	// ErrInvalidGain is returned for peak gains outside the supported range.
	ErrInvalidGain = errors.New("eq: invalid gain")
)

// Control limits shared by the parameter layout and the coefficient factory.
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
	MinGainDB    = -24.0
	MaxGainDB    = 24.0
	MinQuality   = 0.1
	MaxQuality   = 10.0

	// maxCutoffRatio keeps every design strictly below Nyquist.
	maxCutoffRatio = 0.49
)

// Slope is the steepness of a cut filter.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48
)

// NumSlopes is the number of steepness levels.
const NumSlopes = 4

// ParseSlope converts a steepness level (0..3) to a Slope.
func ParseSlope(level int) (Slope, error) {
	s := Slope(level)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: level %d", ErrInvalidSlope, level)
	}
	return s, nil
}

// SlopeFromDBPerOctave converts 12, 24, 36 or 48 to a Slope.
func SlopeFromDBPerOctave(db int) (Slope, error) {
	if db <= 0 || db%12 != 0 {
		return 0, fmt.Errorf("%w: %d dB/oct", ErrInvalidSlope, db)
	}
	return ParseSlope(db/12 - 1)
}

// Valid reports whether s is one of the four levels.
func (s Slope) Valid() bool {
	return s >= Slope12 && s <= Slope48
}

// Sections returns the number of biquads the slope needs.
func (s Slope) Sections() int { return int(s) + 1 }

// Order returns the Butterworth order of the cut filter.
func (s Slope) Order() int { return 2 * s.Sections() }

// DBPerOctave returns the asymptotic attenuation per octave.
func (s Slope) DBPerOctave() int { return 12 * s.Sections() }

func (s Slope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slope(%d)", int(s))
	}
	return fmt.Sprintf("%d dB/oct", s.DBPerOctave())
}

// Settings is an immutable snapshot of every control value.
type Settings struct {
	PeakFreq     float64
	PeakGainDB   float64
	PeakQuality  float64
	LowCutFreq   float64
	HighCutFreq  float64
	LowCutSlope  Slope
	HighCutSlope Slope
}

// DefaultSettings returns the neutral setup: 0 dB bell at 750 Hz, cuts at
// the edges of the audible range, 12 dB/oct.
func DefaultSettings() Settings {
	return Settings{
		PeakFreq:     750,
		PeakGainDB:   0,
		PeakQuality:  1,
		LowCutFreq:   MinFrequency,
		HighCutFreq:  MaxFrequency,
		LowCutSlope:  Slope12,
		HighCutSlope: Slope12,
	}
}

// Validate checks s against the control ranges.
func (s Settings) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"peak", s.PeakFreq},
		{"low-cut", s.LowCutFreq},
		{"high-cut", s.HighCutFreq},
	} {
		if !inRange(f.v, MinFrequency, MaxFrequency) {
			return fmt.Errorf("%w: %s %v Hz", ErrInvalidFrequency, f.name, f.v)
		}
	}
	if !inRange(s.PeakQuality, MinQuality, MaxQuality) {
		return fmt.Errorf("%w: %v", ErrInvalidQuality, s.PeakQuality)
	}
	if !inRange(s.PeakGainDB, MinGainDB, MaxGainDB) {
		return fmt.Errorf("%w: %v dB", ErrInvalidGain, s.PeakGainDB)
	}
	if !s.LowCutSlope.Valid() {
		return fmt.Errorf("%w: low-cut level %d", ErrInvalidSlope, int(s.LowCutSlope))
	}
	if !s.HighCutSlope.Valid() {
		return fmt.Errorf("%w: high-cut level %d", ErrInvalidSlope, int(s.HighCutSlope))
	}
	return nil
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
