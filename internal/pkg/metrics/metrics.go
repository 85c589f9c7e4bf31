// Package metrics holds the Prometheus collectors for the matching API and
// chat rooms.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skillsync"

// Match variants, used as the "variant" label.
const (
	VariantProfile = "profile"
	VariantSkills  = "skills"
	VariantPopular = "popular"
)

// Outcomes, used as the "outcome" label.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// MatchRequests counts matching calls by entry point and outcome.
	MatchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "match_requests_total",
		Help:      "Matching calls by entry point and outcome",
	}, []string{"variant", "outcome"})

	// MatchDuration records end-to-end latency of a matching call, store fetch included.
	MatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_duration_seconds",
		Help:      "Matching call latency in seconds",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"variant"})

	// CandidatePoolSize records how many profiles the store returned for scoring.
	CandidatePoolSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "candidate_pool_size",
		Help:      "Profiles fetched per matching call",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
	})

	// PopularSkillsCache counts cache lookups for popular skills: "hit" or "miss".
	PopularSkillsCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "popular_skills_cache_total",
		Help:      "Popular skills cache lookups",
	}, []string{"result"})

	// HTTPRequests counts served requests by method and status code.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status",
	}, []string{"method", "status"})

	// ChatConnections tracks open chat websocket connections.
	ChatConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chat_connections",
		Help:      "Open chat websocket connections",
	})

	// ChatMessages counts chat messages delivered to rooms, by source: "local" or "relay".
	ChatMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Chat messages delivered to rooms",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(
		MatchRequests,
		MatchDuration,
		CandidatePoolSize,
		PopularSkillsCache,
		HTTPRequests,
		ChatConnections,
		ChatMessages,
	)
}

// ObserveMatch records one matching call.
func ObserveMatch(variant, outcome string, started time.Time) {
	MatchRequests.WithLabelValues(variant, outcome).Inc()
	MatchDuration.WithLabelValues(variant).Observe(time.Since(started).Seconds())
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
