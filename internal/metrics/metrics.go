package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "traktmanager"

// Metrics holds the counters recorded while talking to the Trakt API.
// A nil *Metrics records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	mappingFailures *prometheus.CounterVec
	pollOutcomes    *prometheus.CounterVec
	presented       *prometheus.CounterVec
}

// New creates the collectors on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Trakt API requests by endpoint and status code.",
		}, []string{"endpoint", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Trakt API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		mappingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mapping_failures_total",
			Help:      "Payload items dropped because they could not be mapped.",
		}, []string{"resource"}),
		pollOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "device_poll_outcomes_total",
			Help:      "Device token polls by returned signal.",
		}, []string{"signal"}),
		presented: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presented_results_total",
			Help:      "Results handed to presenters by kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.requests, m.requestDuration, m.mappingFailures, m.pollOutcomes, m.presented)
	return m
}

// ObserveRequest records one API round trip. status is 0 when no response was received.
func (m *Metrics) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(endpoint, label).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// MappingFailure records a dropped payload item
func (m *Metrics) MappingFailure(resource string) {
	if m == nil {
		return
	}
	m.mappingFailures.WithLabelValues(resource).Inc()
}

// PollOutcome records the signal returned by a device token poll
func (m *Metrics) PollOutcome(signal string) {
	if m == nil {
		return
	}
	if signal == "" {
		signal = "none"
	}
	m.pollOutcomes.WithLabelValues(signal).Inc()
}

// Presented records a result handed to the presenters
func (m *Metrics) Presented(kind string) {
	if m == nil {
		return
	}
	m.presented.WithLabelValues(kind).Inc()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the node-exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
