// Package eq implements a three-band parametric equalizer engine: a
// Butterworth low-cut of 12 to 48 dB/oct, one RBJ peaking band and a
// Butterworth high-cut, per channel.
//
// [DesignFilters] maps a [Settings] snapshot to coefficients. [MonoPath] is
// the fixed per-channel section graph. [Coordinator] ties a parameter store
// to any number of paths and swaps new designs in at block boundaries
// without locks or allocation on the audio goroutine.
package eq
