package metrics

import "github.com/prometheus/client_golang/prometheus"

// Audience engine Prometheus metrics.
var (
	AudienceComputeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "audex",
			Name:      "audience_compute_duration_seconds",
			Help:      "Audience recomputation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	AudienceSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "audex",
			Name:      "audience_size",
			Help:      "Size of the most recently computed audience",
		},
	)

	FilterMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audex",
			Name:      "filter_mutations_total",
			Help:      "Filter state mutations by field and operation",
		},
		[]string{"field", "op"}, // op: set / toggle / clear / import / interpret
	)

	InterpretationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audex",
			Name:      "interpretations_total",
			Help:      "Free-text interpretations by outcome",
		},
		[]string{"outcome"}, // "understood" / "not_understood"
	)

	IntentRuleFiresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audex",
			Name:      "intent_rule_fires_total",
			Help:      "Intent rule firings by rule label",
		},
		[]string{"rule"},
	)

	StateImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audex",
			Name:      "state_imports_total",
			Help:      "Filter state imports by result",
		},
		[]string{"result"}, // "ok" / "decode_error"
	)

	SavedStateOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audex",
			Name:      "saved_state_ops_total",
			Help:      "Saved state store operations by op and result",
		},
		[]string{"op", "result"},
	)
)

var audienceMetricsRegistered bool

// RegisterAudienceMetrics registers the audience metrics. Must be called once from main.
func RegisterAudienceMetrics() {
	if audienceMetricsRegistered {
		return
	}
	prometheus.MustRegister(AudienceComputeDuration)
	prometheus.MustRegister(AudienceSize)
	prometheus.MustRegister(FilterMutationsTotal)
	prometheus.MustRegister(InterpretationsTotal)
	prometheus.MustRegister(IntentRuleFiresTotal)
	prometheus.MustRegister(StateImportsTotal)
	prometheus.MustRegister(SavedStateOpsTotal)
	audienceMetricsRegistered = true
}
