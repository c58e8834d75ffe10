// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_chat_requests_total",
			Help: "Total chat messages handled, by final department",
		},
		[]string{"department"},
	)

	ChatDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "concierge_chat_duration_seconds",
			Help: "Duration of the full chat pipeline per message",
		},
		[]string{"department"},
	)

	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_llm_calls_total",
			Help: "LLM gateway calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	HeuristicFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_heuristic_fallback_total",
			Help: "Times an operation fell back to heuristic parsing",
		},
		[]string{"operation"},
	)

	OrdersPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_orders_persisted_total",
			Help: "Restaurant orders written to the store",
		},
	)

	RoomServicePersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_room_service_persisted_total",
			Help: "Room service requests written to the store",
		},
	)

	AgentsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_agents_skipped_total",
			Help: "Domain agents skipped during multi-intent combination",
		},
		[]string{"department"},
	)
)
