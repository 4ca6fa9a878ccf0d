package metrics

import "github.com/prometheus/client_golang/prometheus"

// Offer search and suggestion collectors.
var (
	OfferSearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_search_total",
			Help:      "Total offer searches by mode and outcome",
		},
		[]string{"mode", "status"}, // mode: "faceted" / "semantic"
	)

	OfferSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "offer_search_duration_seconds",
			Help:      "Offer search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	SuggestSourceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggest_source_total",
			Help:      "Suggestion source lookups by outcome",
		},
		[]string{"source", "status"}, // source: "history" / "venue" / "keyword"
	)

	SuggestStaleTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggest_stale_total",
			Help:      "Suggestion responses superseded by a newer keystroke",
		},
	)

	SuggestSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "suggest_sessions",
			Help:      "Open suggestion sessions",
		},
	)
)
