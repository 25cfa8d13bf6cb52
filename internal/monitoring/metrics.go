package monitoring

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector manages Prometheus metrics for the service. Each collector
// owns its registry so independent instances never collide.
type MetricsCollector struct {
	serviceName string
	registry    *prometheus.Registry

	// Standard HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	activeConnections   prometheus.Gauge
	serviceInfo         *prometheus.GaugeVec

	// Domain metrics
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	fetchesTotal     *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector for a service
func NewMetricsCollector(serviceName, version string) *MetricsCollector {
	// Sanitize service name for Prometheus (replace hyphens with underscores)
	sanitizedServiceName := strings.ReplaceAll(serviceName, "-", "_")

	mc := &MetricsCollector{
		serviceName: sanitizedServiceName,
		registry:    prometheus.NewRegistry(),
	}

	mc.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	mc.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    mc.serviceName + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	mc.activeConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: mc.serviceName + "_active_connections",
			Help: "Number of active connections",
		},
	)

	mc.serviceInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: mc.serviceName + "_service_info",
			Help: "Service information",
		},
		[]string{"version"},
	)

	mc.analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_analyses_total",
			Help: "Analyses run, by outcome",
		},
		[]string{"status"},
	)

	mc.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    mc.serviceName + "_analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	mc.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: mc.serviceName + "_fetches_total",
			Help: "Artifact fetches, by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	mc.registry.MustRegister(
		mc.httpRequestsTotal,
		mc.httpRequestDuration,
		mc.activeConnections,
		mc.serviceInfo,
		mc.analysesTotal,
		mc.analysisDuration,
		mc.fetchesTotal,
	)

	mc.serviceInfo.WithLabelValues(version).Set(1)

	return mc
}

// ObserveAnalysis records one analysis run. Safe on a nil collector.
func (mc *MetricsCollector) ObserveAnalysis(status string, seconds float64) {
	if mc == nil {
		return
	}
	mc.analysesTotal.WithLabelValues(status).Inc()
	mc.analysisDuration.Observe(seconds)
}

// ObserveFetch records one artifact fetch attempt. Safe on a nil collector.
func (mc *MetricsCollector) ObserveFetch(kind, status string) {
	if mc == nil {
		return
	}
	mc.fetchesTotal.WithLabelValues(kind, status).Inc()
}

// MetricsMiddleware returns middleware that collects HTTP metrics
func (mc *MetricsCollector) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		mc.activeConnections.Inc()
		defer mc.activeConnections.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		mc.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		mc.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}

// Handler returns the Prometheus metrics HTTP handler
func (mc *MetricsCollector) Handler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}
