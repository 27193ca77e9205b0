// Package response measures the magnitude response of block processors.
//
// An [Analyzer] drives a processor with a unit impulse, transforms the
// captured impulse response with an FFT and exposes the one-sided magnitude
// spectrum as a [Response]. It is the measured counterpart to the
// closed-form curves in the eq package and is used to cross-check them.
//
// Level helpers [RMS] and [PeakDB] summarize processed signals.
package response
