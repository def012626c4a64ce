// Package metrics exposes Prometheus metrics for changelog loading and rendering.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the metrics set.
type Config struct {
	// Namespace is the metrics namespace (default: "verlog").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the metrics set.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics holds the Prometheus collectors. It implements changelog.Recorder.
type Metrics struct {
	fetches          *prometheus.CounterVec
	renders          *prometheus.CounterVec
	renderedVersions prometheus.Gauge
	pipelineDuration prometheus.Histogram
}

// New registers the collectors and returns them.
func New(opts ...Option) *Metrics {
	cfg := Config{
		Namespace: "verlog",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "fetches_total",
			Help:      "Total number of changelog resource fetches by resource and outcome",
		}, []string{"resource", "outcome"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "renders_total",
			Help:      "Total number of render passes by result",
		}, []string{"result"}),

		renderedVersions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "rendered_versions",
			Help:      "Number of version blocks in the most recent render",
		}),

		pipelineDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time to load and render the changelog page",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveFetch counts one fetch of resource with the given outcome.
func (m *Metrics) ObserveFetch(resource, outcome string) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(resource, outcome).Inc()
}

// ObserveRender records a finished render pass.
func (m *Metrics) ObserveRender(ok bool, versions int, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "skipped"
	}
	m.renders.WithLabelValues(result).Inc()
	if ok {
		m.renderedVersions.Set(float64(versions))
	}
	m.pipelineDuration.Observe(elapsed.Seconds())
}
