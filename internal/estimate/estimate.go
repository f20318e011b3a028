// Package estimate runs the workload and pricing calculators as one unit and
// records metrics and logs around them.
package estimate

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/cleanbid/internal/metrics"
	"github.com/Simplici0/cleanbid/internal/pricing"
	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/workload"
)

// Estimate pairs a workload with the pricing computed from the same snapshot.
type Estimate struct {
	Workload workload.Result `json:"workload"`
	Pricing  pricing.Result  `json:"pricing"`
}

// Warnings returns the workload warnings followed by the pricing warnings.
func (e Estimate) Warnings() []string {
	out := make([]string, 0, len(e.Workload.Warnings)+len(e.Pricing.Warnings))
	out = append(out, e.Workload.Warnings...)
	return append(out, e.Pricing.Warnings...)
}

type Service struct {
	workload *workload.Calculator
	pricing  *pricing.Calculator
	log      *zap.Logger
}

func NewService(wp workload.Policy, pp pricing.Policy, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		workload: workload.NewCalculator(wp),
		pricing:  pricing.NewCalculator(pp),
		log:      log,
	}
}

// Workload runs only the workload calculator.
func (s *Service) Workload(snap scope.Snapshot) (workload.Result, error) {
	start := time.Now()
	res, err := s.workload.Calculate(snap)
	s.observe("workload", start, len(res.Warnings), err)
	return res, err
}

// Estimate calculates the workload and prices it. Both halves always come
// from snap.
func (s *Service) Estimate(snap scope.Snapshot) (Estimate, error) {
	start := time.Now()
	est, err := s.calculate(snap)
	s.observe("estimate", start, len(est.Warnings()), err)
	if err != nil {
		return Estimate{}, err
	}

	s.log.Info("estimate calculated",
		zap.Int("areas", len(snap.Areas)),
		zap.Float64("monthly_hours", est.Workload.MonthlyHours),
		zap.Int("cleaners_needed", est.Workload.CleanersNeeded),
		zap.Float64("total_monthly_cost", est.Pricing.Totals.TotalMonthlyCost),
		zap.Float64("recommended_price", est.Pricing.Totals.RecommendedPrice),
		zap.String("method", string(snap.PricingStrategy.Method)),
	)
	return est, nil
}

// Preview is Estimate for a scope that may still be incomplete: insufficient
// data is reported as ok=false instead of an error.
func (s *Service) Preview(snap scope.Snapshot) (Estimate, bool, error) {
	start := time.Now()
	est, err := s.calculate(snap)
	s.observe("preview", start, len(est.Warnings()), err)
	switch {
	case errors.Is(err, scope.ErrInsufficientData):
		return Estimate{}, false, nil
	case err != nil:
		return Estimate{}, false, err
	}
	return est, true, nil
}

func (s *Service) calculate(snap scope.Snapshot) (Estimate, error) {
	w, err := s.workload.Calculate(snap)
	if err != nil {
		return Estimate{}, err
	}
	p, err := s.pricing.Calculate(snap, w)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{Workload: w, Pricing: p}, nil
}

func (s *Service) observe(kind string, start time.Time, warnings int, err error) {
	metrics.CalculationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.CalculationsTotal.WithLabelValues(kind, Outcome(err)).Inc()
	if warnings > 0 {
		metrics.CalculationWarnings.WithLabelValues(kind).Add(float64(warnings))
	}

	var calcErr *scope.CalculationError
	switch {
	case err == nil:
	case errors.Is(err, scope.ErrInsufficientData):
		s.log.Debug("calculation skipped", zap.String("kind", kind), zap.Error(err))
	case errors.As(err, &calcErr):
		s.log.Warn("invalid calculation input",
			zap.String("kind", kind),
			zap.String("code", string(calcErr.Code)),
			zap.String("field", calcErr.Field),
		)
	default:
		s.log.Error("calculation failed", zap.String("kind", kind), zap.Error(err))
	}
}

// Outcome classifies a calculation error for metrics.
func Outcome(err error) string {
	var calcErr *scope.CalculationError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, scope.ErrInsufficientData):
		return metrics.OutcomeInsufficient
	case errors.As(err, &calcErr):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}
