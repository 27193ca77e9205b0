package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// NewPlanar allocates channels buffers of frames samples each.
func NewPlanar(channels, frames int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	return out
}

// Deinterleave splits frame-interleaved float32 samples into planar buffers.
// It returns the number of frames written, bounded by the shortest planar buffer.
func Deinterleave(dst [][]float64, src []float32) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}
	frames := len(src) / channels
	for ch := range dst {
		if len(dst[ch]) < frames {
			frames = len(dst[ch])
		}
	}
	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := range dst {
			dst[ch][i] = float64(src[base+ch])
		}
	}
	return frames
}

// Interleave writes the first frames samples of the planar buffers into dst.
func Interleave(dst []float32, src [][]float64, frames int) {
	channels := len(src)
	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := range src {
			dst[base+ch] = float32(src[ch][i])
		}
	}
}
