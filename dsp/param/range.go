package param

import (
	"fmt"
	"math"
)

// Range maps a parameter's raw value onto [0, 1].
//
// Interval snaps raw values to multiples of the step above Min (0 disables
// snapping). Skew bends the mapping: values below 1 give the low end of the
// range more of the normalised travel, which suits frequency controls.
type Range struct {
	Min, Max float64
	Interval float64
	Skew     float64
}

// NewRange returns a range with the given bounds, step and skew.
func NewRange(minValue, maxValue, interval, skew float64) Range {
	return Range{Min: minValue, Max: maxValue, Interval: interval, Skew: skew}
}

// Validate reports whether the range can be used by a parameter.
func (r Range) Validate() error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max) || !(r.Max > r.Min):
		return fmt.Errorf("%w: bounds [%v, %v]", ErrInvalidRange, r.Min, r.Max)
	case r.Interval < 0 || r.Interval > r.Max-r.Min:
		return fmt.Errorf("%w: interval %v", ErrInvalidRange, r.Interval)
	case !(r.Skew > 0) || math.IsInf(r.Skew, 0):
		return fmt.Errorf("%w: skew %v", ErrInvalidRange, r.Skew)
	}
	return nil
}

// Clamp limits v to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Snap clamps v and rounds it to the nearest legal step. Values already on
// the grid, up to rounding error, are returned unchanged.
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Interval > 0 {
		snapped := r.Min + math.Round((v-r.Min)/r.Interval)*r.Interval
		if math.Abs(snapped-v) > r.Interval*snapTolerance {
			v = snapped
		}
	}
	return r.Clamp(v)
}

const snapTolerance = 1e-9

// ToNormalized converts a raw value to its position in [0, 1].
func (r Range) ToNormalized(v float64) float64 {
	p := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Skew == 1 || p <= 0 {
		return p
	}
	return math.Pow(p, r.Skew)
}

// FromNormalized converts a position in [0, 1] to a snapped raw value.
func (r Range) FromNormalized(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	if r.Skew != 1 && p > 0 {
		p = math.Exp(math.Log(p) / r.Skew)
	}
	return r.Snap(r.Min + (r.Max-r.Min)*p)
}
