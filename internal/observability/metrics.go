package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors the dashboard exports on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	queryTotal    *prometheus.CounterVec
	queryDuration prometheus.Histogram
	queryMatched  prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	datasetRecords prometheus.Gauge
}

// NewMetrics registers collectors on a private registry, so tests and
// multiple servers in one process never collide.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		queryTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_query_total",
			Help: "Chart queries by result kind",
		}, []string{"result"}),
		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_query_duration_seconds",
			Help:    "Chart query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}),
		queryMatched: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_query_matched_units",
			Help:    "Units matched per chart query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		datasetRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_dataset_records",
			Help: "Records held by the loaded dataset",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveQuery(d time.Duration, units int) {
	if m == nil {
		return
	}
	result := "non_empty"
	if units == 0 {
		result = "empty"
	}
	m.queryTotal.WithLabelValues(result).Inc()
	m.queryDuration.Observe(d.Seconds())
	m.queryMatched.Observe(float64(units))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) SetDatasetRecords(n int) {
	if m == nil {
		return
	}
	m.datasetRecords.Set(float64(n))
}
