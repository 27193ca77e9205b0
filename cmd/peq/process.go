package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/wavio"
	"github.com/cwbudde/algo-eq/measure/response"
)

func newProcessCommand(a *app) *cobra.Command {
	var sf *settingsFlags

	cmd := &cobra.Command{
		Use:   "process <input.wav> <output.wav>",
		Short: "Filter a WAV file offline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sf.resolve(a.cfg.Preset)
			if err != nil {
				return err
			}
			return a.process(args[0], args[1], s)
		},
	}
	sf = addSettingsFlags(cmd.Flags())
	return cmd
}

func (a *app) process(in, out string, s eq.Settings) error {
	log := logging.Module(a.logger, "process")

	clip, err := wavio.ReadFile(in)
	if err != nil {
		return err
	}

	store, err := eq.NewParameterStore()
	if err != nil {
		return err
	}
	coord, err := eq.NewCoordinator(store, eq.WithLogger(log))
	if err != nil {
		return err
	}
	if err := coord.ApplySettings(s); err != nil {
		return err
	}

	cfg := core.ProcessorConfig{
		SampleRate: float64(clip.SampleRate),
		BlockSize:  a.cfg.Audio.BlockSize,
		Channels:   clip.NumChannels(),
	}
	if err := coord.Prepare(cfg); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}

	inPeak := peakDB(clip)
	start := time.Now()
	clip.Process(coord, cfg.BlockSize)
	elapsed := time.Since(start)

	if err := wavio.WriteFile(out, clip); err != nil {
		return err
	}

	log.Info("processed",
		"input", in,
		"output", out,
		"frames", clip.Frames(),
		"channels", clip.NumChannels(),
		"sample_rate", clip.SampleRate,
		"peak_in_db", inPeak,
		"peak_out_db", peakDB(clip),
		"elapsed", elapsed)
	return nil
}

func peakDB(c *wavio.Clip) float64 {
	peak := response.PeakDB(nil)
	for _, ch := range c.Channels {
		peak = max(peak, response.PeakDB(ch))
	}
	return peak
}
