// Package metrics exposes HTTP request metrics in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests       *prometheus.CounterVec
	BadRequests    *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the HTTP collectors with reg. A *prometheus.Registry is
// also used to serve /metrics; any other Registerer falls back to the default gatherer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharebnb_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sharebnb_http_client_errors_total",
				Help: "Total number of unsuccessful (4xx) HTTP requests",
			},
			[]string{"route"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sharebnb_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		gatherer: prometheus.DefaultGatherer,
	}

	reg.MustRegister(m.Requests)
	reg.MustRegister(m.BadRequests)
	reg.MustRegister(m.RequestLatency)

	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Middleware records every request under its route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.RequestLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		if status >= 400 && status < 500 {
			m.BadRequests.WithLabelValues(route).Inc()
		}
	}
}

// Handler serves the registered collectors.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
