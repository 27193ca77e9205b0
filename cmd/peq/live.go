package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/internal/device"
	"github.com/cwbudde/algo-eq/internal/logging"
	"github.com/cwbudde/algo-eq/internal/metrics"
	"github.com/cwbudde/algo-eq/internal/preset"
)

func newLiveCommand(a *app) *cobra.Command {
	var (
		sf    *settingsFlags
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Filter a full-duplex sound card stream until interrupted",
		Long: `Filter a full-duplex sound card stream until interrupted.

With a preset and --watch, saving the preset file retunes the running
filters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sf.resolve(a.cfg.Preset)
			if err != nil {
				return err
			}
			var watchPath string
			if watch {
				watchPath = sf.presetPath(a.cfg.Preset)
			}
			return a.live(cmd.Context(), s, watchPath)
		},
	}
	sf = addSettingsFlags(cmd.Flags())
	cmd.Flags().BoolVar(&watch, "watch", true, "reload the preset file when it changes")
	return cmd
}

// live streams the sound card through the equalizer. A non-empty watchPath
// is reloaded on every save and applied while the stream runs.
func (a *app) live(ctx context.Context, s eq.Settings, watchPath string) error {
	log := logging.Module(a.logger, "live")

	store, err := eq.NewParameterStore()
	if err != nil {
		return err
	}
	if err := eq.PublishSettings(store, s); err != nil {
		return err
	}

	opts := []eq.Option{eq.WithLogger(logging.Module(a.logger, "eq"))}
	var m *metrics.EngineMetrics
	if a.cfg.Metrics.Enabled {
		if m, err = metrics.NewEngineMetrics(prometheus.NewRegistry()); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		opts = append(opts, eq.WithObserver(m))
	}

	coord, err := eq.NewCoordinator(store, opts...)
	if err != nil {
		return err
	}
	cfg := a.cfg.Processor()
	if err := coord.Prepare(cfg); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	if m != nil {
		m.Prepared(cfg)
		stop := serveMetrics(a.cfg.Metrics.Listen, m.Handler(), log)
		defer stop()
	}

	stream, err := device.NewStream(cfg, a.cfg.Audio.Device, coord, logging.Module(a.logger, "device"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if watchPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := preset.Watch(ctx, watchPath, coord.ApplySettings, logging.Module(a.logger, "preset")); err != nil {
				log.Warn("preset watch disabled", "error", err)
			}
		}()
	}

	err = stream.Run(ctx)
	cancel()
	wg.Wait()
	return err
}

// serveMetrics exposes h on /metrics and returns a function that shuts the
// server down.
func serveMetrics(addr string, h http.Handler, log *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
