package core

import "math"

// denormalThreshold is the magnitude below which filter history is zeroed.
// It sits far below the noise floor of any audio format.
const denormalThreshold = 1e-30

// Clamp limits value to the inclusive range [lo, hi]. Swapped bounds are
// accepted. NaN passes through unchanged.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case value < lo:
		return lo
	case value > hi:
		return hi
	default:
		return value
	}
}

// FlushDenormals returns 0 for values too small to matter, so recursive
// filter state decays to exact zero instead of lingering in subnormals.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalThreshold {
		return 0
	}
	return x
}

// DBToLinear converts a gain in dB to a linear amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude factor to dB.
// Zero maps to -Inf and negative input to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	default:
		return 20 * math.Log10(linear)
	}
}
