// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients] and can be bypassed without
// losing its history. Sections are cascaded via [Chain], a fixed-capacity
// array of [MaxSections] sections whose enabled count selects the filter
// order without allocating.
//
// This package provides the processing runtime only. Coefficient design
// (Butterworth, RBJ peaking EQ, etc.) lives in dsp/filter/design.
package biquad
