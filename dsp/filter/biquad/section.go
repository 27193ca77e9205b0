package biquad

import "github.com/cwbudde/algo-eq/dsp/core"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns the neutral pass-through design.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// IsIdentity reports whether c passes the signal through unchanged.
func (c Coefficients) IsIdentity() bool {
	return c == Identity()
}

// Section is a single biquad filter with a coefficient slot, a bypass flag
// and Direct Form II Transposed history.
//
// The zero value is a bypassed section. Replacing the coefficients never
// touches the history; only Reset does.
type Section struct {
	Coefficients

	enabled bool
	d0, d1  float64
}

// NewSection returns an enabled Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c, enabled: true}
}

// SetCoefficients copies c into the section's slot. Zero-alloc.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// SetEnabled switches the section between filtering and pass-through.
func (s *Section) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled reports whether the section is part of the signal path.
func (s *Section) Enabled() bool {
	return s.enabled
}

// ProcessSample filters one input sample and returns the output.
// A bypassed section returns x unchanged and keeps its history.
func (s *Section) ProcessSample(x float64) float64 {
	if !s.enabled {
		return x
	}

	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
//
// The loop is unrolled by two and produces the same outputs as calling
// ProcessSample for every element. History below the denormal threshold
// is flushed to zero once the block ends.
func (s *Section) ProcessBlock(buf []float64) {
	if !s.enabled {
		return
	}

	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	i := 0

	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = core.FlushDenormals(d0), core.FlushDenormals(d1)
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// History is flushed at the block end like ProcessBlock. Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	if !s.enabled {
		copy(dst, src)
		return
	}

	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range src {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		dst[i] = y
	}

	s.d0, s.d1 = core.FlushDenormals(d0), core.FlushDenormals(d1)
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
