// Package metrics exposes Prometheus metrics for the cache-and-signal
// engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec // labels: endpoint, status
	FetchInvocations *prometheus.CounterVec // labels: kind (prices|yield)
	FetchFailures    *prometheus.CounterVec // labels: kind
	RefreshesSkipped *prometheus.CounterVec // labels: kind — cache already fresh
	RowsUpserted     *prometheus.CounterVec // labels: kind
	FetchDuration    prometheus.Histogram
	UpsertDuration   prometheus.Histogram

	registry *prometheus.Registry
}

// New registers and returns all metrics on a private registry, so
// multiple instances (tests) never collide.
func New() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketanalyzer_requests_total",
			Help: "HTTP requests served, by endpoint and status class",
		}, []string{"endpoint", "status"}),
		FetchInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketanalyzer_fetch_invocations_total",
			Help: "External fetcher invocations",
		}, []string{"kind"}),
		FetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketanalyzer_fetch_failures_total",
			Help: "External fetcher invocations that failed or timed out",
		}, []string{"kind"}),
		RefreshesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketanalyzer_refreshes_skipped_total",
			Help: "Requests served from a fresh cache without fetching",
		}, []string{"kind"}),
		RowsUpserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketanalyzer_rows_upserted_total",
			Help: "Observations written to the store",
		}, []string{"kind"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketanalyzer_fetch_duration_seconds",
			Help:    "Wall time of external fetcher invocations",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		UpsertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketanalyzer_upsert_duration_seconds",
			Help:    "Wall time of refresh upsert transactions",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.FetchInvocations,
		m.FetchFailures,
		m.RefreshesSkipped,
		m.RowsUpserted,
		m.FetchDuration,
		m.UpsertDuration,
	)
	return m
}

// Handler returns the /metrics scrape handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
