// Package wavio converts between PCM WAV files and planar float64 clips.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Errors returned by the codec.
var (
	ErrInvalidFile         = errors.New("wavio: not a valid WAV file")
	ErrUnsupportedBitDepth = errors.New("wavio: unsupported bit depth")
	ErrEmptyClip           = errors.New("wavio: clip has no channels")
)

// Clip is decoded audio in planar layout, one slice per channel, with
// samples normalized to [-1, 1).
type Clip struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// NumChannels returns the channel count.
func (c *Clip) NumChannels() int { return len(c.Channels) }

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// BlockProcessor filters planar blocks in place.
type BlockProcessor interface {
	ProcessBlock(channels [][]float64)
}

// Process runs p over the clip in blocks of at most blockSize frames, the
// way a host would deliver them. The block views alias the clip.
func (c *Clip) Process(p BlockProcessor, blockSize int) {
	if blockSize <= 0 {
		blockSize = c.Frames()
	}
	views := make([][]float64, len(c.Channels))
	for start := 0; start < c.Frames(); start += blockSize {
		end := min(start+blockSize, c.Frames())
		for ch, data := range c.Channels {
			views[ch] = data[start:end]
		}
		p.ProcessBlock(views)
	}
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// Decode reads a PCM WAV stream.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, ErrInvalidFile
	}
	frames := len(buf.Data) / channels

	clip := &Clip{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bitDepth,
		Channels:   make([][]float64, channels),
	}
	inv := 1 / scale
	for ch := range clip.Channels {
		data := make([]float64, frames)
		for i := range data {
			data[i] = float64(buf.Data[i*channels+ch]) * inv
		}
		clip.Channels[ch] = data
	}
	return clip, nil
}

// Encode writes c as PCM at c.BitDepth. Samples outside [-1, 1) are
// clipped.
func Encode(w io.WriteSeeker, c *Clip) error {
	if len(c.Channels) == 0 {
		return ErrEmptyClip
	}
	scale, err := fullScale(c.BitDepth)
	if err != nil {
		return err
	}

	channels := len(c.Channels)
	frames := c.Frames()
	data := make([]int, frames*channels)
	for ch, samples := range c.Channels {
		for i := range frames {
			v := math.Round(samples[i] * scale)
			v = math.Max(-scale, math.Min(scale-1, v))
			data[i*channels+ch] = int(v)
		}
	}

	enc := wav.NewEncoder(w, c.SampleRate, c.BitDepth, channels, 1)
	err = enc.Write(&audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: c.SampleRate, NumChannels: channels},
		SourceBitDepth: c.BitDepth,
	})
	if err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}
	return enc.Close()
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile encodes c to path, replacing any existing file.
func WriteFile(path string, c *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	if err := Encode(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
