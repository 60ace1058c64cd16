// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "streamgrab"

var (
	// ExtractionsTotal tracks completed extraction requests.
	// Labels:
	//   - platform: matched platform name, or "none"
	//   - status: ok, unsupported_platform, spawn_failure, tool_failure,
	//     parse_failure, unknown
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Total number of extraction requests",
		},
		[]string{"platform", "status"},
	)

	// ToolInvocationsTotal tracks external extractor invocations.
	// Labels:
	//   - command: metadata, listing, resolve
	//   - status: ok, spawn_failure, tool_failure, parse_failure, unknown
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_invocations_total",
			Help:      "Total number of external extractor invocations",
		},
		[]string{"command", "status"},
	)

	// ToolInvocationDuration tracks external extractor invocation latency.
	ToolInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_invocation_duration_seconds",
			Help:      "Duration of external extractor invocations",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"command"},
	)

	// CacheOperationsTotal tracks result cache operations.
	// Labels:
	//   - operation: get, set
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of result cache operations",
		},
		[]string{"operation", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Tool command constants.
const (
	ToolCommandMetadata = "metadata"
	ToolCommandListing  = "listing"
	ToolCommandResolve  = "resolve"
)

// Tool status constants. Failure statuses reuse the ytdlp error kinds.
const (
	ToolStatusOK = "ok"
)

// Cache operation constants.
const (
	CacheOpGet = "get"
	CacheOpSet = "set"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
