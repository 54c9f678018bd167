// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector registered by the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ordersTotal          prometheus.Counter
	orderValueTotal      prometheus.Counter
	diaryUpdatesTotal    *prometheus.CounterVec
	recommendationsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a private registry.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	m.ordersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "greencart_orders_total",
		Help: "Total number of orders placed",
	})
	m.orderValueTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "greencart_order_value_total",
		Help: "Sum of order totals",
	})
	m.diaryUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greencart_diary_updates_total",
			Help: "Diary entries written, by operation",
		},
		[]string{"operation"}, // create, update, delete, checkout
	)
	m.recommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "greencart_recommendations_total",
			Help: "Dashboard recommendation lists served, by strategy",
		},
		[]string{"strategy"}, // matched, random, none
	)

	for _, c := range []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.ordersTotal,
		m.orderValueTotal,
		m.diaryUpdatesTotal,
		m.recommendationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return m, nil
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordOrder counts a placed order and its value. Safe on a nil receiver.
func (m *Metrics) RecordOrder(total float64) {
	if m == nil {
		return
	}
	m.ordersTotal.Inc()
	if total > 0 {
		m.orderValueTotal.Add(total)
	}
}

// RecordDiaryUpdate counts diary writes. Safe on a nil receiver.
func (m *Metrics) RecordDiaryUpdate(operation string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.diaryUpdatesTotal.WithLabelValues(operation).Add(float64(n))
}

// RecordRecommendation counts a served recommendation list. Safe on a nil
// receiver.
func (m *Metrics) RecordRecommendation(strategy string) {
	if m == nil {
		return
	}
	m.recommendationsTotal.WithLabelValues(strategy).Inc()
}
