package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
)

// Metrics contains all run metrics for the assignment pipeline. The pipeline
// is a single-shot batch job with no network surface, so families are not
// exposed over HTTP; they are gathered from the private registry and written
// into the final log summary instead.
type Metrics struct {
	// PapersIngested counts papers accepted by the entity catalog.
	PapersIngested prometheus.Counter

	// ReviewersIngested counts reviewers accepted by the entity catalog.
	ReviewersIngested prometheus.Counter

	// VariablesBuilt counts decision variables created by the model builder.
	VariablesBuilt prometheus.Counter

	// ConstraintsBuilt counts linear constraints created by the model builder.
	ConstraintsBuilt prometheus.Counter

	// Solves counts solver invocations, labeled by phase and outcome.
	Solves *prometheus.CounterVec

	// SolveDuration observes per-invocation solver wall time in seconds.
	SolveDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates a Metrics set registered on a private registry.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		PapersIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "papers_ingested_total",
			Help:      "Total number of papers accepted by the entity catalog.",
		}),
		ReviewersIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviewers_ingested_total",
			Help:      "Total number of reviewers accepted by the entity catalog.",
		}),
		VariablesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_variables_total",
			Help:      "Total number of decision variables in the constraint model.",
		}),
		ConstraintsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_constraints_total",
			Help:      "Total number of linear constraints in the constraint model.",
		}),
		Solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solver invocations by phase and outcome.",
		}, []string{"phase", "outcome"}),
		SolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time per solver invocation in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		registry: registry,
	}
}

// LogSummary gathers all metric families from the registry and writes one log
// line per sample. Replaces the scrape endpoint a long-running service would
// have.
func (m *Metrics) LogSummary(logger zerolog.Logger) {
	families, err := m.registry.Gather()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to gather run metrics")
		return
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			event := logger.Info().Str("metric", family.GetName())
			for _, label := range metric.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				event.Float64("value", metric.GetCounter().GetValue()).Msg("run metric")
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				event.
					Uint64("count", h.GetSampleCount()).
					Float64("sum", h.GetSampleSum()).
					Msg("run metric")
			default:
				event.Msg("run metric")
			}
		}
	}
}
