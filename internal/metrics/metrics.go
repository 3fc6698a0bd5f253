// Package metrics provides prometheus instrumentation for algodex.
//
// # Description
//
// Metrics cover remote api calls, snapshot refreshes, and filtered list
// requests. They are exposed on /metrics by the serve command.
//
// # Thread Safety
//
// All operations are thread-safe via Prometheus's internal locking. A nil
// *Metrics is valid and records nothing, which keeps the CLI and tests free
// of registry setup.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "algodex"

// Metrics holds all collectors.
type Metrics struct {
	// RemoteRequestsTotal counts remote api calls.
	// Labels: operation, status (http status code or "error")
	RemoteRequestsTotal *prometheus.CounterVec

	// RemoteRequestDuration measures remote api latency.
	// Labels: operation
	RemoteRequestDuration *prometheus.HistogramVec

	// SnapshotRefreshTotal counts snapshot refreshes.
	// Labels: status (success, error)
	SnapshotRefreshTotal *prometheus.CounterVec

	// SnapshotProblems is the number of problems in the current snapshot.
	SnapshotProblems prometheus.Gauge

	// SnapshotFetchedAt is the unix time of the last successful refresh.
	SnapshotFetchedAt prometheus.Gauge

	// FilterRequestsTotal counts list requests by whether any filter was active.
	// Labels: filtered (true, false)
	FilterRequestsTotal *prometheus.CounterVec

	// FilterResultSize observes how many problems a list request returned.
	FilterResultSize prometheus.Histogram
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RemoteRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "remote",
				Name:      "requests_total",
				Help:      "Total remote api requests by operation and status.",
			},
			[]string{"operation", "status"},
		),
		RemoteRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "remote",
				Name:      "request_duration_seconds",
				Help:      "Remote api request latency.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		SnapshotRefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "snapshot",
				Name:      "refresh_total",
				Help:      "Total snapshot refreshes by status.",
			},
			[]string{"status"},
		),
		SnapshotProblems: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "snapshot",
				Name:      "problems",
				Help:      "Number of problems in the current snapshot.",
			},
		),
		SnapshotFetchedAt: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "snapshot",
				Name:      "fetched_at_seconds",
				Help:      "Unix time of the last successful snapshot refresh.",
			},
		),
		FilterRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "filter",
				Name:      "requests_total",
				Help:      "Total problem list requests by whether a filter was active.",
			},
			[]string{"filtered"},
		),
		FilterResultSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "filter",
				Name:      "result_size",
				Help:      "Number of problems returned by a list request.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}
}

func (m *Metrics) ObserveRemoteRequest(operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RemoteRequestsTotal.WithLabelValues(operation, StatusLabel(status)).Inc()
	m.RemoteRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRefresh(err error, problems int, fetchedAt time.Time) {
	if m == nil {
		return
	}
	if err != nil {
		m.SnapshotRefreshTotal.WithLabelValues("error").Inc()
		return
	}
	m.SnapshotRefreshTotal.WithLabelValues("success").Inc()
	m.SnapshotProblems.Set(float64(problems))
	m.SnapshotFetchedAt.Set(float64(fetchedAt.Unix()))
}

func (m *Metrics) ObserveFilter(active bool, results int) {
	if m == nil {
		return
	}
	m.FilterRequestsTotal.WithLabelValues(strconv.FormatBool(active)).Inc()
	m.FilterResultSize.Observe(float64(results))
}

// StatusLabel renders a status code for metric labels, 0 means no response.
func StatusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
