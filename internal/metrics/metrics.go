// Package metrics exposes prometheus instrumentation for the sync store and
// the HTTP client. A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm_sync"

// Collector owns a registry with the crm-sync metrics.
type Collector struct {
	registry *prometheus.Registry

	attempts        *prometheus.CounterVec
	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	snapshotSize    prometheus.Gauge
	lastSuccess     prometheus.Gauge
	deletes         *prometheus.CounterVec
}

// New creates a Collector on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_attempts_total",
			Help:      "HTTP requests sent to the CRM backend, by operation and outcome",
		}, []string{"op", "outcome"}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "snapshot refreshes by result: ok, stale, network, protocol, rejected",
		}, []string{"result"}),
		refreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "time spent in a refresh including retries",
			Buckets:   prometheus.ExponentialBucketsRange(0.01, 30, 12),
		}),
		snapshotSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_employees",
			Help:      "employees in the current snapshot",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_refresh_timestamp_seconds",
			Help:      "unix time of the last applied snapshot",
		}),
		deletes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "employee delete requests by result",
		}, []string{"result"}),
	}
}

// RecordAttempt counts one HTTP attempt.
func (c *Collector) RecordAttempt(op, outcome string) {
	if c == nil {
		return
	}
	c.attempts.WithLabelValues(op, outcome).Inc()
}

// RecordRefresh counts a finished refresh and observes its duration.
func (c *Collector) RecordRefresh(result string, took time.Duration) {
	if c == nil {
		return
	}
	c.refreshes.WithLabelValues(result).Inc()
	c.refreshDuration.Observe(took.Seconds())
}

// SetSnapshot records the size and time of a newly applied snapshot.
func (c *Collector) SetSnapshot(size int, at time.Time) {
	if c == nil {
		return
	}
	c.snapshotSize.Set(float64(size))
	c.lastSuccess.Set(float64(at.Unix()))
}

// RecordDelete counts a delete request outcome.
func (c *Collector) RecordDelete(result string) {
	if c == nil {
		return
	}
	c.deletes.WithLabelValues(result).Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
