// Package metrics exposes the Prometheus collectors for the import service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "job_importer"

// Metrics bundles the service collectors behind nil-safe recording helpers.
// A nil *Metrics records nothing, which keeps tests free of registry setup.
type Metrics struct {
	registry *prometheus.Registry

	scrapeRequests  *prometheus.CounterVec
	scrapeDuration  prometheus.Histogram
	garbageDetected *prometheus.CounterVec
	cleanupFailures prometheus.Counter
}

// New creates the collectors on a private registry so multiple instances can
// coexist in one process.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		scrapeRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_requests_total",
			Help:      "Import requests by terminal outcome",
		}, []string{"outcome"}),
		scrapeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrape_duration_seconds",
			Help:      "End to end import request duration",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		garbageDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "garbage_detected_total",
			Help:      "Garbage classifications by confidence band and pipeline stage",
		}, []string{"confidence", "stage"}),
		cleanupFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_failures_total",
			Help:      "Cleanup calls that failed and degraded to raw content",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordScrape counts one finished import request with its terminal outcome
// label and observes its duration.
func (m *Metrics) RecordScrape(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.scrapeRequests.WithLabelValues(outcome).Inc()
	m.scrapeDuration.Observe(duration.Seconds())
}

// RecordGarbage counts one garbage classification at the raw or cleaned
// stage.
func (m *Metrics) RecordGarbage(confidence, stage string) {
	if m == nil {
		return
	}
	m.garbageDetected.WithLabelValues(confidence, stage).Inc()
}

// RecordCleanupFailure counts one cleanup call that degraded to raw content.
func (m *Metrics) RecordCleanupFailure() {
	if m == nil {
		return
	}
	m.cleanupFailures.Inc()
}
