package preset

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eq/dsp/eq"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchAppliesRewrittenPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	require.NoError(t, SaveFile(path, eq.DefaultSettings()))

	store, err := eq.NewParameterStore()
	require.NoError(t, err)
	coord, err := eq.NewCoordinator(store)
	require.NoError(t, err)

	var logs lockedBuffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, coord.ApplySettings, logger) }()

	peakGain := func(want float64) func() bool {
		return func() bool { return math.Abs(coord.Settings().PeakGainDB-want) < 1e-9 }
	}

	// The watcher may not be registered yet, so each attempt writes again.
	s := vocal()
	s.PeakGainDB = 9
	require.Eventually(t, func() bool {
		assert.NoError(t, SaveFile(path, s))
		return peakGain(9)()
	}, 5*time.Second, 200*time.Millisecond)
	assert.Equal(t, s.LowCutSlope, coord.Settings().LowCutSlope)

	require.Eventually(t, func() bool {
		assert.NoError(t, os.WriteFile(path, []byte("peak:\n  gain_db: 30\n"), 0o644))
		return strings.Contains(logs.String(), "preset reload failed")
	}, 5*time.Second, 200*time.Millisecond)
	assert.True(t, peakGain(9)(), "invalid preset leaves settings in place")

	s.PeakGainDB = -3
	require.Eventually(t, func() bool {
		assert.NoError(t, SaveFile(path, s))
		return peakGain(-3)()
	}, 5*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "live.yaml")
	err := Watch(context.Background(), path, func(eq.Settings) error { return nil }, nil)
	assert.Error(t, err)
}
