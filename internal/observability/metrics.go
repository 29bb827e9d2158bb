// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Poll metrics
	CyclesTotal       *prometheus.CounterVec
	CycleDuration     prometheus.Histogram
	CharactersTracked prometheus.Gauge
	RealmsTracked     prometheus.Gauge

	// API metrics
	RequestsTotal  *prometheus.CounterVec
	RequestRetries prometheus.Counter
	RequestLatency prometheus.Histogram

	// Health metrics
	LastSuccessfulCycle prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "armoryd"
	}

	return &Metrics{
		CyclesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "cycles_total",
			Help:      "Total number of poll cycles by status",
		}, []string{"status"}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "cycle_duration_seconds",
			Help:      "Poll cycle duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		CharactersTracked: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "characters_tracked",
			Help:      "Number of characters tracked per cycle",
		}),
		RealmsTracked: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "poll",
			Name:      "realms_tracked",
			Help:      "Number of realms tracked per cycle",
		}),
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of API requests by HTTP status",
		}, []string{"status"}),
		RequestRetries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_retries_total",
			Help:      "Total number of throttled requests retried",
		}),
		RequestLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_latency_seconds",
			Help:      "API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		LastSuccessfulCycle: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_cycle_timestamp",
			Help:      "Unix timestamp of the last successful poll cycle",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordCycle records one completed poll cycle.
func RecordCycle(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	DefaultMetrics.CyclesTotal.WithLabelValues(status).Inc()
	DefaultMetrics.CycleDuration.Observe(duration.Seconds())
	if success {
		DefaultMetrics.LastSuccessfulCycle.SetToCurrentTime()
	}
}

// RecordRequest records one API request by HTTP status code.
// Network failures carry no status and are recorded as "error".
func RecordRequest(status int, latency time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	DefaultMetrics.RequestsTotal.WithLabelValues(label).Inc()
	DefaultMetrics.RequestLatency.Observe(latency.Seconds())
}

// RecordRetry increments the throttle retry counter.
func RecordRetry() {
	DefaultMetrics.RequestRetries.Inc()
}

// SetTracked updates the tracked entity gauges.
func SetTracked(characters, realms int) {
	DefaultMetrics.CharactersTracked.Set(float64(characters))
	DefaultMetrics.RealmsTracked.Set(float64(realms))
}
