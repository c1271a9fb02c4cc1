// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "room4rent_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "room4rent_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	billsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "room4rent_bills_generated_total",
		Help: "Bill generations by outcome (created or updated)",
	}, []string{"result"})

	paymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "room4rent_payments_recorded_total",
		Help: "Payments recorded, labelled by the resulting bill status",
	}, []string{"status"})

	meterReadingsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "room4rent_meter_readings_saved_total",
		Help: "Meter reading upserts by outcome (created or updated)",
	}, []string{"result"})

	panicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "room4rent_panics_recovered_total",
		Help: "Handler panics turned into 500 responses",
	}, []string{"path"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveBillGenerated counts a bill generation.
func ObserveBillGenerated(created bool) {
	billsGenerated.WithLabelValues(outcome(created)).Inc()
}

// ObservePayment counts a recorded payment by resulting bill status.
func ObservePayment(status string) {
	paymentsRecorded.WithLabelValues(status).Inc()
}

// ObserveMeterReading counts a meter reading upsert.
func ObserveMeterReading(created bool) {
	meterReadingsSaved.WithLabelValues(outcome(created)).Inc()
}

// ObservePanic counts a recovered handler panic on the given route.
func ObservePanic(path string) {
	if path == "" {
		path = "unmatched"
	}
	panicsRecovered.WithLabelValues(path).Inc()
}

func outcome(created bool) string {
	if created {
		return "created"
	}
	return "updated"
}
