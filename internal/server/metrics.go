package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
)

type metrics struct {
	registry *prometheus.Registry

	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	conversionsTotal   *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "distillation_http_requests_total",
			Help: "HTTP requests handled, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "distillation_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		conversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "distillation_conversions_total",
			Help: "Curve conversions attempted, by input family and outcome.",
		}, []string{"input_type", "status"}),
		conversionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "distillation_conversion_duration_seconds",
			Help: "Engine conversion latency, by input family.",
			// Conversions are microsecond-scale, well below the default buckets.
			Buckets: prometheus.ExponentialBuckets(1e-5, 10, 6),
		}, []string{"input_type"}),
	}

	version.Version = Version
	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.conversionsTotal,
		m.conversionDuration,
		versioncollector.NewCollector("distillation_converter"),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeRequest(method, route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *metrics) observeConversion(inputType string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.conversionsTotal.WithLabelValues(inputType, status).Inc()
	m.conversionDuration.WithLabelValues(inputType).Observe(duration.Seconds())
}
