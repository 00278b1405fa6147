// Package telemetry holds the prometheus instruments for the search and
// chat core. Everything is registered on the default registry and served
// from /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts external provider searches by outcome.
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vestnik_provider_requests_total",
		Help: "External search provider calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	// ChatMessages counts processed chat messages by routed intent.
	ChatMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vestnik_chat_messages_total",
		Help: "Processed chat messages by classified intent.",
	}, []string{"intent"})

	// LLMRequests counts language-model calls by operation and outcome.
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vestnik_llm_requests_total",
		Help: "LLM backend calls by operation and outcome.",
	}, []string{"operation", "outcome"})

	// SearchDuration observes end-to-end hybrid search latency.
	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vestnik_hybrid_search_seconds",
		Help:    "End-to-end hybrid search latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})
)
