// Package metrics exposes Prometheus metrics for the editor, file generation
// and the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every geofilemaker metric on its own Prometheus registry
type Registry struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ClicksTotal      *prometheus.CounterVec
	ConnectionsTotal *prometheus.CounterVec
	StoredLinks      prometheus.Gauge
	RebuildsTotal    prometheus.Counter
	RenderedNodes    *prometheus.GaugeVec
	VisibleLinks     prometheus.Gauge

	GenerationsTotal   *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
}

// NewRegistry creates a registry with all metrics registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initHTTPMetrics()
	r.initEditorMetrics()
	r.initGenerationMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "geofilemaker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geofilemaker_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
}

func (r *Registry) initEditorMetrics() {
	r.ClicksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "geofilemaker_clicks_total",
			Help: "Node clicks by selection outcome",
		},
		[]string{"outcome"}, // armed, disarmed, rejected, accepted
	)

	r.ConnectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "geofilemaker_connection_attempts_total",
			Help: "Completed connection attempts by result",
		},
		[]string{"result"}, // accepted, same_tier, countries_areas
	)

	r.StoredLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "geofilemaker_stored_links",
			Help: "Links in the connection store, visible or not",
		},
	)

	r.RebuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "geofilemaker_rebuilds_total",
			Help: "Total number of editor rebuilds",
		},
	)

	r.RenderedNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "geofilemaker_rendered_nodes",
			Help: "Rendered nodes per tier",
		},
		[]string{"tier"},
	)

	r.VisibleLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "geofilemaker_visible_links",
			Help: "Links in the current document",
		},
	)
}

func (r *Registry) initGenerationMetrics() {
	r.GenerationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "geofilemaker_generations_total",
			Help: "File generation runs by status",
		},
		[]string{"status"},
	)

	r.GenerationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geofilemaker_generation_duration_seconds",
			Help:    "Duration of file generation runs",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
}

// Gatherer exposes the underlying registry
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordClick records one selection outcome; result is empty for armed/disarmed
func (r *Registry) RecordClick(outcome, result string) {
	r.ClicksTotal.WithLabelValues(outcome).Inc()
	if result != "" {
		r.ConnectionsTotal.WithLabelValues(result).Inc()
	}
}

// RecordRebuild records one rebuild and the resulting sizes
func (r *Registry) RecordRebuild(rendered map[string]int, visibleLinks, storedLinks int) {
	r.RebuildsTotal.Inc()
	for tier, n := range rendered {
		r.RenderedNodes.WithLabelValues(tier).Set(float64(n))
	}
	r.VisibleLinks.Set(float64(visibleLinks))
	r.StoredLinks.Set(float64(storedLinks))
}

// RecordGeneration records a finished generation run
func (r *Registry) RecordGeneration(status string, duration time.Duration) {
	r.GenerationsTotal.WithLabelValues(status).Inc()
	r.GenerationDuration.Observe(duration.Seconds())
}
