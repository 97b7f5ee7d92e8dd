// Package metrics exposes sync counters on a private Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "navsync"

// Run outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeBusy     = "busy"
	OutcomeDisabled = "disabled"
)

type Metrics struct {
	registry *prometheus.Registry

	runs          *prometheus.CounterVec
	transfers     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	notifications *prometheus.CounterVec
	duration      prometheus.Histogram
	lastSuccess   prometheus.Gauge
}

// New registers every collector on a fresh registry so several instances
// can coexist in one process.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "Sync attempts, partitioned by outcome.",
		}, []string{"outcome"}),
		transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_transfers_total",
			Help:      "Channel transfers, partitioned by channel and direction.",
		}, []string{"channel", "direction"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_failures_total",
			Help:      "Failed sync runs, partitioned by error kind.",
		}, []string{"kind"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications published, partitioned by kind.",
		}, []string{"kind"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of sync runs that reached the remote store.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sync_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful sync.",
		}),
	}
}

func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess || outcome == OutcomeError {
		m.duration.Observe(d.Seconds())
	}
	if outcome == OutcomeSuccess {
		m.lastSuccess.SetToCurrentTime()
	}
}

func (m *Metrics) ObserveTransfer(channel, direction string) {
	if m == nil {
		return
	}
	m.transfers.WithLabelValues(channel, direction).Inc()
}

func (m *Metrics) ObserveFailure(kind string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveNotification(kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind).Inc()
}

// Registry is exposed for tests and for callers that add their own collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
