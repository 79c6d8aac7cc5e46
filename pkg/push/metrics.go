package push

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "loom").
	Namespace string

	// Subsystem is the metrics subsystem (default: "push").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "loom",
		Subsystem: "push",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for the push server.
type Metrics struct {
	sessionsActive  prometheus.Gauge
	sessionsTotal   *prometheus.CounterVec
	eventsTotal     *prometheus.CounterVec
	changesFlushed  prometheus.Counter
	flushDuration   prometheus.Histogram
	framesSent      prometheus.Counter
	wsErrors        *prometheus.CounterVec
	snapshotsStored prometheus.Counter
}

// Metrics are registered against a registry once; the singleton keeps
// repeated NewMetrics calls with default options from panicking on
// duplicate registration.
var (
	globalMetrics     *Metrics
	globalMetricsOnce sync.Once
)

// NewMetrics creates (or, with default options, returns the shared)
// metrics instance.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if len(opts) == 0 {
		globalMetricsOnce.Do(func() {
			globalMetrics = initMetrics(config)
		})
		return globalMetrics
	}
	return initMetrics(config)
}

func initMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_active",
			Help:        "Currently connected sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_total",
			Help:        "Sessions started, by kind (fresh or resumed)",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Client events processed, by type and status",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "status"}),

		changesFlushed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "changes_flushed_total",
			Help:        "State changes pushed to clients",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Time to drain and send one change batch",
			Buckets:     config.Buckets,
			ConstLabels: config.ConstLabels,
		}),

		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_sent_total",
			Help:        "Protocol frames written to clients",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ws_errors_total",
			Help:        "WebSocket errors, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		snapshotsStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshots_stored_total",
			Help:        "Session snapshots written to the store",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Nil-safe recording helpers; a nil *Metrics disables instrumentation.

func (m *Metrics) sessionStarted(kind string) {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
	m.sessionsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) sessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

func (m *Metrics) eventProcessed(eventType, status string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(eventType, status).Inc()
}

func (m *Metrics) flushed(changes, frames int, seconds float64) {
	if m == nil {
		return
	}
	m.changesFlushed.Add(float64(changes))
	m.framesSent.Add(float64(frames))
	m.flushDuration.Observe(seconds)
}

func (m *Metrics) wsError(op string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) snapshotStored() {
	if m == nil {
		return
	}
	m.snapshotsStored.Inc()
}
