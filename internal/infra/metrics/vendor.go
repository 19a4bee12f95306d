package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		vendorCalls,
		vendorCallLatencyMs,
		promptTokens,
	)
}

var (
	vendorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_calls_total",
			Help: "Outbound vendor API calls per vendor/operation and success flag.",
		},
		[]string{"vendor", "op", "success"},
	)

	vendorCallLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_call_latency_ms",
			Help:    "Vendor call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
		},
		[]string{"vendor", "op"},
	)

	promptTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_tokens_total",
			Help: "Estimated prompt tokens submitted per tool.",
		},
		[]string{"tool"},
	)
)

func ObserveVendorCall(vendor, op string, latencyMs int, success bool) {
	vendorCalls.WithLabelValues(norm(vendor), norm(op), strconv.FormatBool(success)).Inc()
	vendorCallLatencyMs.WithLabelValues(norm(vendor), norm(op)).Observe(float64(latencyMs))
}

func AddPromptTokens(tool string, n int) {
	promptTokens.WithLabelValues(norm(tool)).Add(float64(n))
}
