package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pagetrail",
			Name:      "search_duration_seconds",
			Help:      "Full search pipeline duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pagetrail",
			Name:      "search_results_returned",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"strategy"},
	)

	FilterRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagetrail",
			Name:      "filter_rejections_total",
			Help:      "Candidates rejected by the filter cascade, by reason",
		},
		[]string{"reason"}, // "category" / "temporal" / "similarity"
	)

	SimilarityCapTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pagetrail",
			Name:      "similarity_threshold_capped_total",
			Help:      "Searches where the requested similarity threshold was capped",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsReturned)
	prometheus.MustRegister(FilterRejectionsTotal)
	prometheus.MustRegister(SimilarityCapTotal)
	searchMetricsRegistered = true
}
