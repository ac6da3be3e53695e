package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation generation endpoint
	RecommendationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_generate_latency_seconds",
		Help:    "Latency of recommendation generation",
		Buckets: prometheus.DefBuckets,
	})

	// Total recommendation requests served, by strategy type
	RecommendationRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total recommendation requests served",
	}, []string{"type"})

	// Strategy failures swallowed by the engine (empty result returned)
	StrategyFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_strategy_failures_total",
		Help: "Strategy errors converted to empty result lists",
	}, []string{"strategy"})

	// Behavior events accepted, by action
	BehaviorEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "behavior_events_total",
		Help: "Behavior events accepted for tracking",
	}, []string{"action"})

	// Feedback transitions recorded against persisted recommendations
	FeedbackEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_feedback_events_total",
		Help: "Recommendation feedback events recorded",
	}, []string{"action"})
)

func Init() {
	prometheus.MustRegister(
		RecommendationLatency,
		RecommendationRequestsTotal,
		StrategyFailuresTotal,
		BehaviorEventsTotal,
		FeedbackEventsTotal,
	)
}
