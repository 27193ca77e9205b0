// Package pass designs maximally flat (Butterworth) lowpass and highpass
// cascades as sequences of biquad sections.
package pass
