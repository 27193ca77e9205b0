package preset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

// settleDelay coalesces the burst of events an editor or WriteFile emits
// for one save.
const settleDelay = 50 * time.Millisecond

// Watch reloads the preset at path whenever it is written or replaced and
// passes the new settings to apply. It blocks until ctx is cancelled.
//
// The parent directory is watched so that editors which save by renaming a
// temporary file over path are picked up. Unreadable or invalid versions are
// logged and skipped; the previous settings stay in effect.
func Watch(ctx context.Context, path string, apply func(eq.Settings) error, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("preset: watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching preset", "path", abs)

	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			settle.Reset(settleDelay)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("preset watcher error", "error", err)

		case <-settle.C:
			reload(abs, apply, logger)
		}
	}
}

func reload(path string, apply func(eq.Settings) error, logger *slog.Logger) {
	s, err := LoadFile(path)
	if err != nil {
		logger.Warn("preset reload failed", "path", path, "error", err)
		return
	}
	if err := apply(s); err != nil {
		logger.Warn("preset rejected", "path", path, "error", err)
		return
	}
	logger.Info("preset reloaded", "path", path,
		"peak_hz", s.PeakFreq,
		"peak_gain_db", s.PeakGainDB)
}
