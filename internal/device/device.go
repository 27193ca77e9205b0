// Package device runs a block processor on a full-duplex sound card stream.
//
// Capture and playback share one F32 stream at the configured rate and
// channel count. The data callback converts each period through a [Bridge]
// and never blocks or allocates.
package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// ErrDeviceNotFound is returned when no capture device matches the
// configured name.
var ErrDeviceNotFound = errors.New("device: no matching capture device")

// Info describes one capture device.
type Info struct {
	Name      string
	IsDefault bool
}

func backendForPlatform() []malgo.Backend {
	switch runtime.GOOS {
	case "linux":
		return []malgo.Backend{malgo.BackendAlsa, malgo.BackendPulseaudio}
	case "windows":
		return []malgo.Backend{malgo.BackendWasapi}
	case "darwin":
		return []malgo.Backend{malgo.BackendCoreaudio}
	default:
		return nil
	}
}

// List returns the capture devices of the platform backend.
func List() ([]Info, error) {
	ctx, err := malgo.InitContext(backendForPlatform(), malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("device: init context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("device: enumerate: %w", err)
	}
	out := make([]Info, 0, len(infos))
	for i := range infos {
		out = append(out, Info{Name: infos[i].Name(), IsDefault: infos[i].IsDefault == 1})
	}
	return out, nil
}

// selectDevice returns the index of the first device whose name equals or
// contains name, or -1 for the backend default.
func selectDevice(names []string, name string) (int, error) {
	if name == "" || name == "default" {
		return -1, nil
	}
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	for i, n := range names {
		if strings.Contains(n, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
}

// Stream is a configured duplex stream.
type Stream struct {
	cfg    core.ProcessorConfig
	name   string
	bridge *Bridge
	logger *slog.Logger
}

// NewStream prepares a duplex stream that feeds proc. The period size is
// the configured block size. An empty name selects the default device.
func NewStream(cfg core.ProcessorConfig, name string, proc BlockProcessor, logger *slog.Logger) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stream{
		cfg:    cfg,
		name:   name,
		bridge: NewBridge(proc, cfg.Channels, cfg.BlockSize),
		logger: logger,
	}, nil
}

// Run starts the device and blocks until ctx is cancelled or the device
// stops on its own.
func (s *Stream) Run(ctx context.Context) error {
	mctx, err := malgo.InitContext(backendForPlatform(), malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("device: init context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Duplex)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = uint32(s.cfg.Channels)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = uint32(s.cfg.Channels)
	cfg.SampleRate = uint32(s.cfg.SampleRate)
	cfg.PeriodSizeInFrames = uint32(s.cfg.BlockSize)
	cfg.Alsa.NoMMap = 1

	if s.name != "" {
		infos, err := mctx.Devices(malgo.Capture)
		if err != nil {
			return fmt.Errorf("device: enumerate: %w", err)
		}
		names := make([]string, len(infos))
		for i := range infos {
			names[i] = infos[i].Name()
		}
		idx, err := selectDevice(names, s.name)
		if err != nil {
			return err
		}
		if idx >= 0 {
			cfg.Capture.DeviceID = infos[idx].ID.Pointer()
		}
	}

	stopped := make(chan struct{})
	var once sync.Once
	callbacks := malgo.DeviceCallbacks{
		Data: func(output, input []byte, frames uint32) {
			s.bridge.Process(output, input, int(frames))
		},
		Stop: func() { once.Do(func() { close(stopped) }) },
	}

	dev, err := malgo.InitDevice(mctx.Context, cfg, callbacks)
	if err != nil {
		return fmt.Errorf("device: init device: %w", err)
	}
	defer dev.Uninit()

	if err := dev.Start(); err != nil {
		return fmt.Errorf("device: start: %w", err)
	}
	s.logger.Info("device started",
		"sample_rate", s.cfg.SampleRate,
		"block_size", s.cfg.BlockSize,
		"channels", s.cfg.Channels,
		"device", s.name)

	select {
	case <-ctx.Done():
	case <-stopped:
		s.logger.Warn("device stopped unexpectedly")
	}

	if err := dev.Stop(); err != nil {
		return fmt.Errorf("device: stop: %w", err)
	}
	s.logger.Info("device stopped")
	return nil
}
