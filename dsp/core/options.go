package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by Validate for unusable processing settings.
var ErrInvalidConfig = errors.New("core: invalid processor config")

// ProcessorConfig defines the stream settings negotiated with the host.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	Channels   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a stereo 48 kHz stream with 512-frame blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  512,
		Channels:   2,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum block size the host will deliver.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithChannels sets the number of audio channels.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether cfg can drive a processing graph.
func (cfg ProcessorConfig) Validate() error {
	switch {
	case cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0):
		return fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, cfg.SampleRate)
	case cfg.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, cfg.BlockSize)
	case cfg.Channels <= 0:
		return fmt.Errorf("%w: channel count %d", ErrInvalidConfig, cfg.Channels)
	}
	return nil
}

// Nyquist returns half the sample rate.
func (cfg ProcessorConfig) Nyquist() float64 {
	return cfg.SampleRate / 2
}
