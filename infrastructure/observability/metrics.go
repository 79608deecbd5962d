package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application. It
// implements ports.Metrics.
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	ListOperations        *prometheus.CounterVec
	FriendshipChanges     *prometheus.CounterVec
	RecommendationLatency prometheus.Histogram

	// Persistence metrics
	SnapshotSaves *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace.
// Every collector owns its registry, so tests can build as many as they
// like.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ListOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "list_operations_total",
				Help:      "Total number of list session operations",
			},
			[]string{"variant", "operation"},
		),
		FriendshipChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "friendship_changes_total",
				Help:      "Total number of applied friendship changes",
			},
			[]string{"operation"},
		),
		RecommendationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommendation_duration_seconds",
				Help:      "Friend recommendation ranking duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
		SnapshotSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_saves_total",
				Help:      "Total number of social graph snapshot saves",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.ListOperations,
		c.FriendshipChanges,
		c.RecommendationLatency,
		c.SnapshotSaves,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the registry the metrics are registered with
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ListOperation counts an edit or query on a list session
func (c *Collector) ListOperation(variant, operation string) {
	c.ListOperations.WithLabelValues(variant, operation).Inc()
}

// FriendshipChanged counts an applied friend add or remove
func (c *Collector) FriendshipChanged(operation string) {
	c.FriendshipChanges.WithLabelValues(operation).Inc()
}

// RecommendationServed records how long a ranking took
func (c *Collector) RecommendationServed(duration time.Duration) {
	c.RecommendationLatency.Observe(duration.Seconds())
}

// SnapshotSaved counts snapshot saves by outcome
func (c *Collector) SnapshotSaved(outcome string) {
	c.SnapshotSaves.WithLabelValues(outcome).Inc()
}
