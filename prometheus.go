package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter serves metrics on a dedicated listener.
type PrometheusExporter struct {
	Path     string // e.g., "/metrics"
	Listen   string // e.g., ":2550"
	Gatherer prometheus.Gatherer
}

// Handler returns the exposition handler for the exporter's gatherer.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.Gatherer, promhttp.HandlerOpts{})
}

// Start begins the HTTP server to serve Prometheus metrics.
func (e *PrometheusExporter) Start() error {
	mux := http.NewServeMux()
	mux.Handle(e.Path, e.Handler())
	return http.ListenAndServe(e.Listen, mux)
}

// Operation outcomes.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// MetricExporter counts codec activity and exposes it to Prometheus.
type MetricExporter struct {
	desc       map[string]*prometheus.Desc
	operations *prometheus.CounterVec
	bytes      *prometheus.CounterVec
}

// NewMetricExporter initializes the MetricExporter with descriptions for each metric.
func NewMetricExporter() *MetricExporter {
	metricDesc := map[string]*prometheus.Desc{
		"server_status": prometheus.NewDesc("server_status", "General OK status of the server", []string{"service"}, nil),
	}

	return &MetricExporter{
		desc: metricDesc,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gsm7_operations_total",
			Help: "Codec operations by outcome",
		}, []string{"operation", "outcome"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gsm7_bytes_total",
			Help: "GSM 7-bit bytes produced or consumed",
		}, []string{"direction"}),
	}
}

// Observe records one operation and whether it failed.
func (e *MetricExporter) Observe(operation string, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	e.operations.WithLabelValues(operation, outcome).Inc()
}

// AddBytes records n GSM 7-bit bytes for direction "encoded" or "decoded".
func (e *MetricExporter) AddBytes(direction string, n int) {
	e.bytes.WithLabelValues(direction).Add(float64(n))
}

// Describe sends all metric descriptions to the Prometheus channel.
func (e *MetricExporter) Describe(ch chan<- *prometheus.Desc) {
	e.operations.Describe(ch)
	e.bytes.Describe(ch)
	for _, desc := range e.desc {
		ch <- desc
	}
}

// Collect gathers the current counters.
func (e *MetricExporter) Collect(ch chan<- prometheus.Metric) {
	e.operations.Collect(ch)
	e.bytes.Collect(ch)
	ch <- prometheus.MustNewConstMetric(e.desc["server_status"], prometheus.GaugeValue, 1, "web")
}
