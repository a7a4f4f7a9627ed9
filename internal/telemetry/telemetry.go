// Package telemetry holds the engine's process-wide metrics: cache
// occupancy, ancestor-list misses, and per-quorum validation outcomes
// (spec §9's observability surface, carried as ambient infrastructure
// regardless of the spec's feature Non-goals).
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CacheSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mnlist",
		Name:      "cache_size",
		Help:      "Number of masternode lists currently held in the processor cache.",
	})

	NeededAncestorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mnlist",
		Name:      "needed_ancestors_total",
		Help:      "Total ancestor masternode lists requested but not found in cache or provider.",
	})

	QuorumsProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mnlist",
		Name:      "quorums_processed_total",
		Help:      "Total quorums whose membership and signatures were validated, by LLMQ type.",
	}, []string{"llmq_type"})

	QuorumsInvalidTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mnlist",
		Name:      "quorums_invalid_total",
		Help:      "Total quorums that failed signature verification, by LLMQ type.",
	}, []string{"llmq_type"})
)

func init() {
	prometheus.MustRegister(
		CacheSize,
		NeededAncestorsTotal,
		QuorumsProcessedTotal,
		QuorumsInvalidTotal,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
