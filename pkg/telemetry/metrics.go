package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/glint-ui/glint/pkg/runtime"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "glint").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
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

// WithBuckets sets the render duration histogram buckets.
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
		Namespace: "glint",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a runtime.Observer backed by Prometheus collectors.
type Metrics struct {
	componentsActive prometheus.Gauge
	rendersTotal     *prometheus.CounterVec
	updatesDropped   prometheus.Counter
	bindingsSkipped  prometheus.Counter
	renderDuration   prometheus.Histogram
}

var _ runtime.Observer = (*Metrics)(nil)

// Render outcome label values.
const (
	OutcomeCommitted = "committed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		componentsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "components_active",
			Help:        "Number of live component instances.",
			ConstLabels: cfg.ConstLabels,
		}),
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "renders_total",
			Help:        "Render cycles by outcome.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),
		updatesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "updates_dropped_total",
			Help:        "Updates dropped by the storm ceiling.",
			ConstLabels: cfg.ConstLabels,
		}),
		bindingsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "bindings_skipped_total",
			Help:        "Event bindings skipped due to unresolved handlers.",
			ConstLabels: cfg.ConstLabels,
		}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Duration of committed render cycles.",
			Buckets:     cfg.Buckets,
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// ComponentMounted implements runtime.Observer.
func (m *Metrics) ComponentMounted(string) {
	m.componentsActive.Inc()
}

// ComponentDestroyed implements runtime.Observer.
func (m *Metrics) ComponentDestroyed(string) {
	m.componentsActive.Dec()
}

// RenderStarted implements runtime.Observer.
func (m *Metrics) RenderStarted(string) {}

// RenderCommitted implements runtime.Observer.
func (m *Metrics) RenderCommitted(_ string, took time.Duration) {
	m.rendersTotal.WithLabelValues(OutcomeCommitted).Inc()
	m.renderDuration.Observe(took.Seconds())
}

// RenderSkipped implements runtime.Observer.
func (m *Metrics) RenderSkipped(string) {
	m.rendersTotal.WithLabelValues(OutcomeSkipped).Inc()
}

// RenderFailed implements runtime.Observer.
func (m *Metrics) RenderFailed(string) {
	m.rendersTotal.WithLabelValues(OutcomeFailed).Inc()
}

// UpdateDropped implements runtime.Observer.
func (m *Metrics) UpdateDropped(string) {
	m.updatesDropped.Inc()
}

// BindingSkipped implements runtime.Observer.
func (m *Metrics) BindingSkipped(string, string) {
	m.bindingsSkipped.Inc()
}
