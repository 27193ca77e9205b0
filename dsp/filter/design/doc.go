// Package design provides digital IIR filter coefficient designers.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: RBJ-cookbook lowpass, highpass
// and peaking sections. Every designer is a pure function of its arguments
// and falls back to [biquad.Identity] for requests it cannot realise.
//
// The sub-package design/pass builds Butterworth cascades from these
// second-order sections.
package design
