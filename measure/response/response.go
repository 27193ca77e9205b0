package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Errors returned by the analyzer.
var (
	ErrInvalidLength     = errors.New("response: length must be an even number >= 2")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrEmptyIR           = errors.New("response: impulse response is empty")
)

// BlockProcessor is anything that filters a mono buffer in place.
type BlockProcessor interface {
	ProcessBlock(buf []float64)
}

// Analyzer measures magnitude responses with a fixed FFT length.
// An Analyzer reuses its buffers and is not safe for concurrent use.
type Analyzer struct {
	sampleRate float64
	length     int

	plan *algofft.Plan[complex128]
	ir   []float64
	in   []complex128
	spec []complex128
	re   []float64
	im   []float64
}

// NewAnalyzer creates an analyzer capturing length samples of impulse
// response at sampleRate.
func NewAnalyzer(sampleRate float64, length int) (*Analyzer, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}
	if length < 2 || length%2 != 0 {
		return nil, ErrInvalidLength
	}

	plan, err := algofft.NewPlan64(length)
	if err != nil {
		return nil, fmt.Errorf("response: create fft plan: %w", err)
	}

	bins := length/2 + 1
	return &Analyzer{
		sampleRate: sampleRate,
		length:     length,
		plan:       plan,
		ir:         make([]float64, length),
		in:         make([]complex128, length),
		spec:       make([]complex128, length),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
	}, nil
}

// SampleRate returns the analysis sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Length returns the impulse response length in samples.
func (a *Analyzer) Length() int { return a.length }

// Measure feeds a unit impulse through p and returns its magnitude
// response. The processor's state is whatever p holds on entry; callers
// should reset it first.
func (a *Analyzer) Measure(p BlockProcessor) (*Response, error) {
	core.Zero(a.ir)
	a.ir[0] = 1
	p.ProcessBlock(a.ir)
	return a.Spectrum(a.ir)
}

// Spectrum returns the magnitude response of an impulse response. Inputs
// shorter than the analysis length are zero padded, longer ones truncated.
func (a *Analyzer) Spectrum(ir []float64) (*Response, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	n := min(len(ir), a.length)
	for i := range a.in {
		a.in[i] = 0
	}
	for i := range n {
		a.in[i] = complex(ir[i], 0)
	}

	if err := a.plan.Forward(a.spec, a.in); err != nil {
		return nil, fmt.Errorf("response: forward fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.spec[k])
		a.im[k] = imag(a.spec[k])
	}

	mag := make([]float64, len(a.re))
	vecmath.Magnitude(mag, a.re, a.im)

	return &Response{SampleRate: a.sampleRate, Length: a.length, Magnitude: mag}, nil
}

// Response is a one-sided magnitude spectrum with Length/2+1 bins.
type Response struct {
	SampleRate float64
	Length     int
	Magnitude  []float64
}

// BinWidth returns the frequency spacing between bins in Hz.
func (r *Response) BinWidth() float64 {
	return r.SampleRate / float64(r.Length)
}

// Frequency returns the centre frequency of bin k in Hz.
func (r *Response) Frequency(k int) float64 {
	return float64(k) * r.BinWidth()
}

// MagnitudeAt returns the linear gain at freqHz, interpolating linearly
// between neighbouring bins. Frequencies outside [0, Nyquist] are clamped.
func (r *Response) MagnitudeAt(freqHz float64) float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	last := len(r.Magnitude) - 1
	pos := core.Clamp(freqHz/r.BinWidth(), 0, float64(last))
	if math.IsNaN(pos) {
		return r.Magnitude[0]
	}

	k := int(pos)
	if k >= last {
		return r.Magnitude[last]
	}
	frac := pos - float64(k)
	return r.Magnitude[k]*(1-frac) + r.Magnitude[k+1]*frac
}

// MagnitudeDB returns the gain at freqHz in dB.
func (r *Response) MagnitudeDB(freqHz float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(freqHz))
}

// Curve fills dst with the gain in dB at each frequency, reusing dst's
// capacity, and returns it.
func (r *Response) Curve(dst, freqs []float64) []float64 {
	dst = core.EnsureLen(dst, len(freqs))
	for i, f := range freqs {
		dst[i] = r.MagnitudeDB(f)
	}
	return dst
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

// PeakDB returns the absolute peak of x in dBFS. An empty or silent slice
// reports negative infinity.
func PeakDB(x []float64) float64 {
	if len(x) == 0 {
		return math.Inf(-1)
	}
	return core.LinearToDB(math.Max(math.Abs(floats.Max(x)), math.Abs(floats.Min(x))))
}
