package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "creatorverse"

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	registry      *prometheus.Registry
	storeRequests *prometheus.CounterVec
	storeLatency  *prometheus.HistogramVec
	storeUp       prometheus.Gauge
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		storeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "requests_total",
			Help:      "Creator store calls by operation and result.",
		}, []string{"operation", "result"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "request_duration_seconds",
			Help:      "Latency of creator store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		storeUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "up",
			Help:      "1 when the last store health check succeeded.",
		}),
	}
	m.registry.MustRegister(
		m.storeRequests,
		m.storeLatency,
		m.storeUp,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveStoreCall records one store round trip
func (m *Metrics) ObserveStoreCall(operation string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeRequests.WithLabelValues(operation, result).Inc()
	m.storeLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// SetStoreUp records the outcome of the latest health check
func (m *Metrics) SetStoreUp(up bool) {
	if up {
		m.storeUp.Set(1)
		return
	}
	m.storeUp.Set(0)
}

// Registry exposes the registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
