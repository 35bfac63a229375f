// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-classical.
//
// go-classical is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for cipher and
// cryptanalysis operations. It exposes operation counters, duration
// histograms, error counters, recovered key lengths, HTTP request metrics
// keyed by route pattern, and process resource gauges.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all metrics
	Namespace = "classical"

	// Label names
	LabelOperation  = "operation"
	LabelCipher     = "cipher"
	LabelStatus     = "status"
	LabelErrorType  = "error_type"
	LabelMethod     = "method"
	LabelProtocol   = "protocol"
	LabelRoute      = "route"
	LabelStatusCode = "status_code"

	// RouteUnmatched labels requests that matched no registered route.
	RouteUnmatched = "unmatched"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpEncrypt       = "encrypt"
	OpDecrypt       = "decrypt"
	OpBreakFriedman = "break_friedman"
	OpBreakKasiski  = "break_kasiski"
	OpCoincidence   = "index_of_coincidence"

	// Cipher names
	CipherVigenere  = "vigenere"
	CipherRailFence = "railfence"
	CipherNone      = "none"
)

var (
	// OperationsTotal tracks the total number of operations by type, cipher, and status.
	// Use RecordOperation to increment this counter with the appropriate labels.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of operations by type, cipher, and status",
		},
		[]string{LabelOperation, LabelCipher, LabelStatus},
	)

	// OperationDuration tracks the duration of operations in seconds.
	// Kasiski searches on long texts dominate the upper buckets.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of operations in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{LabelOperation, LabelCipher},
	)

	// ErrorsTotal tracks the total number of errors by operation, cipher, and error type.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by operation, cipher, and error type",
		},
		[]string{LabelOperation, LabelCipher, LabelErrorType},
	)

	// KeyLength tracks the key lengths recovered by each attack.
	KeyLength = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "recovered_key_length",
			Help:      "Key lengths recovered by cryptanalysis",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 20},
		},
		[]string{LabelOperation},
	)

	// ActiveConnections tracks the number of in-flight requests by protocol.
	ActiveConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_connections",
			Help:      "Number of active connections by protocol",
		},
		[]string{LabelProtocol},
	)

	// HTTPRequestsTotal counts HTTP requests by method, route pattern and
	// status code. Routes are the router's patterns, never raw paths.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code",
		},
		[]string{LabelMethod, LabelRoute, LabelStatusCode},
	)

	// HTTPRequestDuration tracks the duration of HTTP requests in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)

	// HTTPResponseBytes tracks response body sizes. Cipher endpoints echo
	// text back, so this follows request text size closely.
	HTTPResponseBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "response_bytes",
			Help:      "Size of HTTP response bodies in bytes",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		},
		[]string{LabelRoute},
	)

	// Goroutines tracks the current number of goroutines.
	// Updated periodically by the resource collector.
	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "goroutines",
			Help:      "Current number of goroutines",
		},
	)

	// MemoryAllocBytes tracks the current bytes of allocated heap objects.
	MemoryAllocBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "memory_alloc_bytes",
			Help:      "Current bytes of allocated heap objects",
		},
	)

	// GCCycles tracks the number of completed garbage collection cycles.
	GCCycles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "gc_cycles",
			Help:      "Number of completed garbage collection cycles",
		},
	)

	// HeapObjects tracks the number of allocated heap objects. The Kasiski
	// search allocates one string per scanned substring.
	HeapObjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "heap_objects",
			Help:      "Number of allocated heap objects",
		},
	)

	// ServerUptime tracks the server uptime in seconds since startup.
	ServerUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "server_uptime_seconds",
			Help:      "Server uptime in seconds since startup",
		},
	)

	// enabled tracks whether metrics collection is enabled
	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// RecordOperation records an operation with its duration and status.
//
// Example:
//
//	start := time.Now()
//	_, err := vigenere.Encrypt(text, key)
//	status := StatusSuccess
//	if err != nil {
//	    status = StatusError
//	}
//	RecordOperation(OpEncrypt, CipherVigenere, status, time.Since(start).Seconds())
func RecordOperation(operation, cipher, status string, duration float64) {
	if !enabled.Load() {
		return
	}
	OperationsTotal.WithLabelValues(operation, cipher, status).Inc()
	OperationDuration.WithLabelValues(operation, cipher).Observe(duration)
}

// RecordError records an error event. errorType should be specific,
// e.g. "invalid_parameter" or "indeterminate_key_length".
func RecordError(operation, cipher, errorType string) {
	if !enabled.Load() {
		return
	}
	ErrorsTotal.WithLabelValues(operation, cipher, errorType).Inc()
}

// RecordKeyLength records the key length an attack settled on.
func RecordKeyLength(operation string, length int) {
	if !enabled.Load() {
		return
	}
	KeyLength.WithLabelValues(operation).Observe(float64(length))
}

// RecordHTTPRequest records an HTTP request with its duration, status and
// response size. An empty route is recorded as RouteUnmatched.
func RecordHTTPRequest(method, route, statusCode string, duration float64, responseBytes int) {
	if !enabled.Load() {
		return
	}
	if route == "" {
		route = RouteUnmatched
	}
	HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
	HTTPResponseBytes.WithLabelValues(route).Observe(float64(responseBytes))
}

// IncrementActiveConnections increments the active connection count for a protocol.
func IncrementActiveConnections(protocol string) {
	if !enabled.Load() {
		return
	}
	ActiveConnections.WithLabelValues(protocol).Inc()
}

// DecrementActiveConnections decrements the active connection count for a protocol.
func DecrementActiveConnections(protocol string) {
	if !enabled.Load() {
		return
	}
	ActiveConnections.WithLabelValues(protocol).Dec()
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
// Useful for testing or when metrics are not desired.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns whether metrics collection is currently enabled.
func IsEnabled() bool {
	return enabled.Load()
}
