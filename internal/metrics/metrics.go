// Package metrics exposes catalog activity as Prometheus metrics. Collector
// implements registry.Observer, so it is attached with registry.WithObserver.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "blotterkit").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Default: a fresh prometheus.NewRegistry()
	Registry *prometheus.Registry
}

// Collector counts registry mutations and lookups.
type Collector struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	removals      *prometheus.CounterVec
	lookups       *prometheus.CounterVec
	entries       *prometheus.GaugeVec
}

// New creates a Collector and registers its metrics with cfg.Registry.
func New(cfg Config) *Collector {
	if cfg.Namespace == "" {
		cfg.Namespace = "blotterkit"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	factory := promauto.With(cfg.Registry)

	return &Collector{
		registry: cfg.Registry,
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "catalog",
			Name:      "registrations_total",
			Help:      "Total number of successful registrations",
		}, []string{"kind"}),
		removals: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "catalog",
			Name:      "unregistrations_total",
			Help:      "Total number of successful unregistrations",
		}, []string{"kind"}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "catalog",
			Name:      "lookups_total",
			Help:      "Total number of lookups by name",
		}, []string{"kind", "name", "found"}),
		entries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "catalog",
			Name:      "entries",
			Help:      "Number of implementations currently registered",
		}, []string{"kind"}),
	}
}

// Registry returns the Prometheus registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Registered implements registry.Observer.
func (c *Collector) Registered(kind, name string) {
	c.registrations.WithLabelValues(kind).Inc()
	c.entries.WithLabelValues(kind).Inc()
}

// Unregistered implements registry.Observer.
func (c *Collector) Unregistered(kind, name string) {
	c.removals.WithLabelValues(kind).Inc()
	c.entries.WithLabelValues(kind).Dec()
}

// Loaded implements registry.Observer.
func (c *Collector) Loaded(kind, name string, found bool) {
	// Misses are recorded under a single label so typos cannot grow
	// cardinality without bound.
	if !found {
		name = ""
	}
	c.lookups.WithLabelValues(kind, name, strconv.FormatBool(found)).Inc()
}
