package registry

import "github.com/prometheus/client_golang/prometheus"

// Lookup outcomes of FindContentModel.
const (
	outcomeHit         = "hit"
	outcomeMiss        = "miss"
	outcomeBusy        = "busy"
	outcomeSyntax      = "syntax"
	outcomeUnavailable = "unavailable"
	outcomeNoProvider  = "no_provider"
)

var (
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmlres",
			Subsystem: "registry",
			Name:      "lookups_total",
			Help:      "Total number of content model lookups by outcome",
		},
		[]string{"outcome"},
	)

	memoizedModels = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "xmlres",
			Subsystem: "registry",
			Name:      "memoized_models",
			Help:      "Content models currently memoized",
		},
	)

	buildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "xmlres",
			Subsystem: "registry",
			Name:      "build_duration_seconds",
			Help:      "Duration of content model builds in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(lookupsTotal, memoizedModels, buildDuration)
}
