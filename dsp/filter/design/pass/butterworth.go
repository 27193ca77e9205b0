package pass

import (
	"github.com/cwbudde/algo-eq/dsp/filter/biquad"
	"github.com/cwbudde/algo-eq/dsp/filter/design"
)

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]biquad.Coefficients, (order+1)/2)
	ButterworthLPInto(sections, freq, order, sampleRate)
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]biquad.Coefficients, (order+1)/2)
	ButterworthHPInto(sections, freq, order, sampleRate)
	return sections
}

// ButterworthLPInto writes the lowpass cascade into dst without allocating
// and returns the number of sections written. It writes nothing and returns
// 0 when dst cannot hold (order+1)/2 sections.
//
// Conjugate pole pairs are emitted from the lowest Q to the highest, so the
// resonant sections come last in the cascade.
func ButterworthLPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) int {
	return butterworthInto(dst, freq, order, sampleRate, design.Lowpass, butterworthFirstOrderLP)
}

// ButterworthHPInto is the highpass counterpart of ButterworthLPInto.
func ButterworthHPInto(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) int {
	return butterworthInto(dst, freq, order, sampleRate, design.Highpass, butterworthFirstOrderHP)
}

func butterworthInto(
	dst []biquad.Coefficients,
	freq float64,
	order int,
	sampleRate float64,
	second func(freq, q, sampleRate float64) biquad.Coefficients,
	first func(freq, sampleRate float64) biquad.Coefficients,
) int {
	n := (order + 1) / 2
	if order <= 0 || len(dst) < n {
		return 0
	}

	k := 0
	for i := order/2 - 1; i >= 0; i-- {
		dst[k] = second(freq, butterworthQ(order, i), sampleRate)
		k++
	}
	if order%2 != 0 {
		dst[k] = first(freq, sampleRate)
		k++
	}
	return k
}
