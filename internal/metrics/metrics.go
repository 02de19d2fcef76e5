package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "tracky_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	externalRequests *prometheus.CounterVec
	externalLatency  *prometheus.HistogramVec

	validationFailures *prometheus.CounterVec

	bookedHours        prometheus.Counter
	projectTimeChanges *prometheus.CounterVec
	attendanceChanges  prometheus.Counter
)

// Init registers the metrics with the default registry. Calls before Init are no-ops.
func Init() {
	registerOnce.Do(func() {
		externalRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "external_requests_total",
				Help: "Total requests to external providers by provider, operation and result",
			},
			[]string{"provider", "operation", "result"},
		)
		externalLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "external_request_duration_seconds",
				Help:    "External provider request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "operation"},
		)
		validationFailures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "validation_failures_total",
				Help: "Rejected form fields by field name",
			},
			[]string{"field"},
		)
		bookedHours = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "booked_hours_total",
				Help: "Hours booked to calculation positions",
			},
		)
		projectTimeChanges = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "project_time_changes_total",
				Help: "Project time changes by kind",
			},
			[]string{"kind"},
		)
		attendanceChanges = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "attendances_saved_total",
				Help: "Attendance periods recorded",
			},
		)

		prometheus.MustRegister(
			externalRequests,
			externalLatency,
			validationFailures,
			bookedHours,
			projectTimeChanges,
			attendanceChanges,
		)
	})
}

// ObserveExternalRequest records the outcome and latency of a provider call.
func ObserveExternalRequest(provider, operation string, err error, duration time.Duration) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	if externalRequests != nil {
		externalRequests.WithLabelValues(provider, operation, result).Inc()
	}
	if externalLatency != nil {
		externalLatency.WithLabelValues(provider, operation).Observe(duration.Seconds())
	}
}

// IncValidationFailure counts one rejected field.
func IncValidationFailure(field string) {
	if field == "" {
		field = "unknown"
	}
	if validationFailures != nil {
		validationFailures.WithLabelValues(field).Inc()
	}
}

func AddBookedHours(hours float64) {
	if hours <= 0 {
		return
	}
	if bookedHours != nil {
		bookedHours.Add(hours)
	}
}

func IncProjectTimeChange(kind string) {
	if projectTimeChanges != nil {
		projectTimeChanges.WithLabelValues(kind).Inc()
	}
}

func IncAttendanceSaved() {
	if attendanceChanges != nil {
		attendanceChanges.Inc()
	}
}
