package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes
const (
	OutcomeSuccess   = "success"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
	OutcomeDiscarded = "discarded"
)

var (
	ChatTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Total number of user actions handled, by kind (text or option)",
		},
		[]string{"kind"},
	)

	ChatSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_searches_total",
			Help: "Total number of backend searches, by outcome",
		},
		[]string{"outcome"},
	)

	ChatSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chat_search_duration_seconds",
			Help:    "Duration of backend project searches in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ChatSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Number of live chat sessions",
		},
	)
)
