package eq

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/param"
)

// Observer receives engine events on the audio goroutine. Implementations
// must not block or allocate.
type Observer interface {
	FiltersUpdated()
	BlockProcessed(frames int)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used by Prepare and ApplySettings. The audio
// path never logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver installs an Observer.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// Coordinator keeps one MonoPath per channel in sync with a parameter store.
//
// Parameter writes on any goroutine set a single dirty flag. ProcessBlock
// test-and-clears it once per block and, when set, resolves the settings,
// designs the filters once into a preallocated Design and copies it into
// every channel. The flag is the only state shared between the control and
// audio goroutines besides the atomically published parameter values.
//
// Prepare must not run concurrently with ProcessBlock.
type Coordinator struct {
	store  *param.Store
	params bindings

	paths  []*MonoPath
	design Design

	sampleRate atomic.Uint64
	dirty      atomic.Bool
	updates    atomic.Uint64

	observer Observer
	logger   *slog.Logger
}

// NewCoordinator binds to the equalizer parameters in store and registers
// for change notifications. The coordinator has no channels until Prepare.
func NewCoordinator(store *param.Store, opts ...Option) (*Coordinator, error) {
	b, err := bind(store)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		store:  store,
		params: b,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.dirty.Store(true)
	store.AddListener(c)

	return c, nil
}

// ParameterChanged marks the filters out of date. Safe from any goroutine.
func (c *Coordinator) ParameterChanged(string) {
	c.dirty.Store(true)
}

// Prepare sizes the coordinator for cfg, clears all filter history and
// applies the current settings. It may allocate.
func (c *Coordinator) Prepare(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(c.paths) != cfg.Channels {
		paths := make([]*MonoPath, cfg.Channels)
		copy(paths, c.paths)
		for i := range paths {
			if paths[i] == nil {
				paths[i] = NewMonoPath()
			}
		}
		c.paths = paths
	}

	c.sampleRate.Store(math.Float64bits(cfg.SampleRate))
	for _, p := range c.paths {
		p.Prepare(cfg)
	}

	c.dirty.Store(false)
	c.update()

	c.logger.Info("filters prepared",
		"sample_rate", cfg.SampleRate,
		"block_size", cfg.BlockSize,
		"channels", cfg.Channels)

	return nil
}

// ProcessBlock filters each channel in place. Channels beyond the prepared
// count are left untouched. Zero-alloc and lock-free.
func (c *Coordinator) ProcessBlock(channels [][]float64) {
	if c.dirty.Swap(false) {
		c.update()
	}

	n := min(len(channels), len(c.paths))
	for ch := range n {
		c.paths[ch].ProcessBlock(channels[ch])
	}

	if c.observer != nil && len(channels) > 0 {
		c.observer.BlockProcessed(len(channels[0]))
	}
}

// Update recomputes and applies the filters immediately. Call it from the
// audio goroutine, or before streaming starts.
func (c *Coordinator) Update() {
	c.dirty.Store(false)
	c.update()
}

func (c *Coordinator) update() {
	s := c.params.resolve()
	DesignFilters(&c.design, s, c.SampleRate())

	for _, p := range c.paths {
		p.ApplyDesign(&c.design)
	}

	c.updates.Add(1)
	if c.observer != nil {
		c.observer.FiltersUpdated()
	}
}

// ApplySettings validates s and publishes it to the parameter store. The
// audio goroutine picks it up at the next block boundary.
func (c *Coordinator) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := PublishSettings(c.store, s); err != nil {
		return err
	}
	c.logger.Debug("settings published",
		"peak_hz", s.PeakFreq,
		"peak_gain_db", s.PeakGainDB,
		"peak_q", s.PeakQuality,
		"low_cut_hz", s.LowCutFreq,
		"low_cut_slope", s.LowCutSlope.String(),
		"high_cut_hz", s.HighCutFreq,
		"high_cut_slope", s.HighCutSlope.String())
	return nil
}

// Settings returns a snapshot of the current controls.
func (c *Coordinator) Settings() Settings {
	return c.params.resolve()
}

// Design recomputes the design for the current controls. It reads only the
// store, so visualisation code may call it from any goroutine.
func (c *Coordinator) Design() Design {
	return NewDesign(c.Settings(), c.SampleRate())
}

// Store returns the parameter store the coordinator listens to.
func (c *Coordinator) Store() *param.Store { return c.store }

// SampleRate returns the rate of the last Prepare, or 0.
func (c *Coordinator) SampleRate() float64 {
	return math.Float64frombits(c.sampleRate.Load())
}

// Channels returns the number of prepared channels.
func (c *Coordinator) Channels() int { return len(c.paths) }

// Path returns the filter path of channel i.
func (c *Coordinator) Path(i int) *MonoPath { return c.paths[i] }

// Updates returns how many times the filters have been recomputed.
func (c *Coordinator) Updates() uint64 { return c.updates.Load() }

// Pending reports whether a parameter change awaits the next block.
func (c *Coordinator) Pending() bool { return c.dirty.Load() }
