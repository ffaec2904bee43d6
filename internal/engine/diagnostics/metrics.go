package diagnostics

import "github.com/prometheus/client_golang/prometheus"

// Validation outcomes.
const (
	outcomeComplete   = "complete"
	outcomePending    = "pending"
	outcomeSuperseded = "superseded"
	outcomeCancelled  = "cancelled"
	outcomeFailed     = "failed"
)

var (
	validationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xmlres",
			Name:      "validations_total",
			Help:      "Total number of validation passes by outcome",
		},
		[]string{"outcome"},
	)

	validationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "xmlres",
			Name:      "validation_duration_seconds",
			Help:      "Duration of validation passes in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(validationsTotal, validationDuration)
}
