package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Blocks splits x into consecutive slices of at most size samples. The
// slices alias x.
func Blocks(x []float64, size int) [][]float64 {
	if size <= 0 {
		return nil
	}
	var out [][]float64
	for start := 0; start < len(x); start += size {
		out = append(out, x[start:min(start+size, len(x))])
	}
	return out
}

// PeakAbs returns the largest absolute sample value.
func PeakAbs(x []float64) float64 {
	var peak float64
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// MaxStep returns the largest absolute difference between neighbouring samples.
func MaxStep(x []float64) float64 {
	var step float64
	for i := 1; i < len(x); i++ {
		step = math.Max(step, math.Abs(x[i]-x[i-1]))
	}
	return step
}
