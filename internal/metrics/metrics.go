// Package metrics exposes Prometheus metrics for the dashboard service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "salesboard"

// Refresh results.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Manager owns every collector. A nil *Manager is valid and records nothing.
type Manager struct {
	registry *prometheus.Registry

	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	snapshotAsOf    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
}

// NewManager registers the collectors on a fresh registry.
func NewManager() *Manager {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)
	return &Manager{
		registry: reg,
		refreshes: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "refreshes_total",
			Help:      "Dashboard refreshes by result",
		}, []string{"result"}),
		refreshDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "refresh_duration_seconds",
			Help:      "Wall time of a full dashboard refresh",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		snapshotAsOf: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "snapshot_timestamp_seconds",
			Help:      "Unix time of the snapshot currently served",
		}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "status_code"}),
	}
}

// ObserveRefresh records one refresh attempt.
func (m *Manager) ObserveRefresh(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
	if result != ResultSkipped {
		m.refreshDuration.Observe(took.Seconds())
	}
}

// SetSnapshotTime records when the served snapshot was built.
func (m *Manager) SetSnapshotTime(t time.Time) {
	if m == nil {
		return
	}
	m.snapshotAsOf.Set(float64(t.Unix()))
}

// ObserveHTTP counts one served request.
func (m *Manager) ObserveHTTP(route, method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
