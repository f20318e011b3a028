package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded on CalculationsTotal.
const (
	OutcomeOK           = "ok"
	OutcomeInsufficient = "insufficient_data"
	OutcomeInvalid      = "invalid_configuration"
	OutcomeError        = "error"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanbid_calculations_total",
			Help: "Total number of calculations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cleanbid_calculation_duration_seconds",
			Help:    "Duration of calculations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"kind"},
	)

	CalculationWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanbid_calculation_warnings_total",
			Help: "Total number of non-fatal calculation warnings",
		},
		[]string{"kind"},
	)
)
