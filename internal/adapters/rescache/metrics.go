package rescache

import "github.com/prometheus/client_golang/prometheus"

// Lookup outcomes of GetResource.
const (
	outcomeHit         = "hit"
	outcomeBusy        = "busy"
	outcomeStarted     = "started"
	outcomeUnavailable = "unavailable"
	outcomeDisabled    = "disabled"
	outcomeInvalid     = "invalid"
)

var (
	downloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmlres",
			Subsystem: "cache",
			Name:      "downloads_total",
			Help:      "Total number of finished resource downloads",
		},
		[]string{"result"},
	)

	downloadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "xmlres",
			Subsystem: "cache",
			Name:      "download_duration_seconds",
			Help:      "Duration of resource downloads in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	inflightDownloads = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "xmlres",
			Subsystem: "cache",
			Name:      "inflight_downloads",
			Help:      "Downloads currently in flight",
		},
	)

	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmlres",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of resource lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(downloadsTotal, downloadDuration, inflightDownloads, lookupsTotal)
}
