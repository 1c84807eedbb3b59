package api

import (
	"sync"
	"time"

	foundation "github.com/estafette/estafette-foundation"
	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "buildstate"

// UpdateMetrics records a single call of funcName in the request count and latency metrics
func UpdateMetrics(requestCount metrics.Counter, requestLatency metrics.Histogram, funcName string, begin time.Time) {
	funcName = foundation.ToLowerSnakeCase(funcName)

	requestCount.With("func", funcName).Add(1)
	requestLatency.With("func", funcName).Observe(time.Since(begin).Seconds())
}

var (
	metricsMutex      sync.Mutex
	requestCounters   = map[string]metrics.Counter{}
	requestHistograms = map[string]metrics.Histogram{}
)

// NewRequestCounter returns the request counter for a subsystem, registering it on first use
func NewRequestCounter(subsystem string) metrics.Counter {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if _, ok := requestCounters[subsystem]; !ok {
		requestCounters[subsystem] = kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, []string{"func"})
	}

	return requestCounters[subsystem]
}

// NewRequestHistogram returns the request latency histogram for a subsystem, registering it on first use
func NewRequestHistogram(subsystem string) metrics.Histogram {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if _, ok := requestHistograms[subsystem]; !ok {
		requestHistograms[subsystem] = kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, []string{"func"})
	}

	return requestHistograms[subsystem]
}
