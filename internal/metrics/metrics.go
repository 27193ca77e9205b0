// Package metrics exposes engine counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

// EngineMetrics counts coordinator activity. It implements eq.Observer;
// the observer methods only touch atomic counters, so they are safe on the
// audio goroutine.
type EngineMetrics struct {
	registry *prometheus.Registry

	filterUpdates   prometheus.Counter
	blocksProcessed prometheus.Counter
	framesProcessed prometheus.Counter
	prepares        prometheus.Counter
	sampleRate      prometheus.Gauge
	blockSize       prometheus.Gauge
	channels        prometheus.Gauge
}

var _ eq.Observer = (*EngineMetrics)(nil)

// NewEngineMetrics creates the collectors and registers them on registry.
func NewEngineMetrics(registry *prometheus.Registry) (*EngineMetrics, error) {
	m := &EngineMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *EngineMetrics) initMetrics() {
	m.filterUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "peq_filter_updates_total",
		Help: "Total number of filter coefficient updates applied",
	})
	m.blocksProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "peq_blocks_processed_total",
		Help: "Total number of audio blocks processed",
	})
	m.framesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "peq_frames_processed_total",
		Help: "Total number of audio frames processed",
	})
	m.prepares = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "peq_prepare_total",
		Help: "Total number of engine prepare calls",
	})
	m.sampleRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "peq_sample_rate_hz",
		Help: "Sample rate the engine is prepared for",
	})
	m.blockSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "peq_block_size_frames",
		Help: "Maximum block size the engine is prepared for",
	})
	m.channels = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "peq_channels",
		Help: "Number of processed channels",
	})
}

func (m *EngineMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.filterUpdates, m.blocksProcessed, m.framesProcessed,
		m.prepares, m.sampleRate, m.blockSize, m.channels,
	}
}

// Describe implements prometheus.Collector.
func (m *EngineMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (m *EngineMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// FiltersUpdated implements eq.Observer.
func (m *EngineMetrics) FiltersUpdated() { m.filterUpdates.Inc() }

// BlockProcessed implements eq.Observer.
func (m *EngineMetrics) BlockProcessed(frames int) {
	m.blocksProcessed.Inc()
	m.framesProcessed.Add(float64(frames))
}

// Prepared records a successful Coordinator.Prepare.
func (m *EngineMetrics) Prepared(cfg core.ProcessorConfig) {
	m.prepares.Inc()
	m.sampleRate.Set(cfg.SampleRate)
	m.blockSize.Set(float64(cfg.BlockSize))
	m.channels.Set(float64(cfg.Channels))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
