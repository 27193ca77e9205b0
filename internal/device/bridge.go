package device

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// bytesPerSample is the size of one F32 sample.
const bytesPerSample = 4

// BlockProcessor filters planar blocks in place.
type BlockProcessor interface {
	ProcessBlock(channels [][]float64)
}

// Bridge adapts a planar processor to the interleaved little-endian F32
// buffers of a duplex callback. All buffers are sized up front, so Process
// does not allocate for periods up to maxFrames.
type Bridge struct {
	proc     BlockProcessor
	channels int

	interleaved []float32
	planar      [][]float64
	views       [][]float64
}

// NewBridge prepares buffers for periods of up to maxFrames frames.
func NewBridge(proc BlockProcessor, channels, maxFrames int) *Bridge {
	return &Bridge{
		proc:        proc,
		channels:    channels,
		interleaved: make([]float32, channels*maxFrames),
		planar:      core.NewPlanar(channels, maxFrames),
		views:       make([][]float64, channels),
	}
}

// Channels returns the interleaved channel count.
func (b *Bridge) Channels() int { return b.channels }

// Process decodes input, runs the processor and encodes the result into
// output. Periods longer than the prepared size are handled in chunks.
// A nil input (playback-only device) is treated as silence.
func (b *Bridge) Process(output, input []byte, frames int) {
	maxFrames := len(b.interleaved) / b.channels
	frameBytes := b.channels * bytesPerSample

	for done := 0; done < frames; {
		n := min(frames-done, maxFrames)
		off := done * frameBytes

		samples := b.interleaved[:n*b.channels]
		for i := range samples {
			p := off + i*bytesPerSample
			if p+bytesPerSample > len(input) {
				samples[i] = 0
				continue
			}
			samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(input[p:]))
		}

		core.Deinterleave(b.planar, samples)
		for ch := range b.views {
			b.views[ch] = b.planar[ch][:n]
		}
		b.proc.ProcessBlock(b.views)
		core.Interleave(samples, b.planar, n)

		for i, v := range samples {
			p := off + i*bytesPerSample
			if p+bytesPerSample > len(output) {
				break
			}
			binary.LittleEndian.PutUint32(output[p:], math.Float32bits(v))
		}
		done += n
	}
}
