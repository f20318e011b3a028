// Package pricing turns a workload into a monthly cost stack and a
// recommended price.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/specialization"
	"github.com/Simplici0/cleanbid/internal/workload"
)

// Policy holds pricing defaults that a snapshot may leave unset.
type Policy struct {
	// HybridMarketWeight is the market price's share of a HYBRID price.
	HybridMarketWeight float64 `json:"hybrid_market_weight"`
}

func DefaultPolicy() Policy {
	return Policy{HybridMarketWeight: 0.5}
}

// RateSource says which wage the cleaning labor was costed at.
type RateSource string

const (
	RateFlat         RateSource = "FLAT"
	RateWeightedCrew RateSource = "WEIGHTED_CREW"
)

// Breakdown contains every monthly cost line.
type Breakdown struct {
	CleaningLaborCost   float64 `json:"cleaning_labor_cost"`
	LeadLaborCost       float64 `json:"lead_labor_cost"`
	SupervisorLaborCost float64 `json:"supervisor_labor_cost"`
	DayPorterCost       float64 `json:"day_porter_cost"`
	BurdenedLaborCost   float64 `json:"burdened_labor_cost"`
	SuppliesCost        float64 `json:"supplies_cost"`
	EquipmentCost       float64 `json:"equipment_cost"`
	OverheadCost        float64 `json:"overhead_cost"`
}

// Totals contains the roll-up values of the calculation.
type Totals struct {
	TotalMonthlyCost   float64 `json:"total_monthly_cost"`
	RecommendedPrice   float64 `json:"recommended_price"`
	GrossProfit        float64 `json:"gross_profit"`
	EffectiveMarginPct float64 `json:"effective_margin_pct"`
}

type Result struct {
	Method      scope.PricingMethod `json:"pricing_method"`
	Breakdown   Breakdown           `json:"breakdown"`
	Totals      Totals              `json:"totals"`
	Explanation Explanation         `json:"explanation"`
	Warnings    []string            `json:"warnings"`
}

// LaborLine is one burdened labor item of the explanation.
type LaborLine struct {
	Role         string          `json:"role"`
	MonthlyHours decimal.Decimal `json:"monthly_hours"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	MonthlyCost  decimal.Decimal `json:"monthly_cost"`
}

type DayPorterContribution struct {
	MonthlyHours decimal.Decimal `json:"monthly_hours"`
	MonthlyCost  decimal.Decimal `json:"monthly_cost"`
}

type ConsumablesContribution struct {
	TotalMonthly decimal.Decimal `json:"total_monthly"`
	Items        []ItemCost      `json:"items"`
}

// SpecializationContribution is the labor cost a specialization added.
type SpecializationContribution struct {
	BidType              specialization.BidType `json:"bid_type"`
	Multiplier           float64                `json:"multiplier"`
	ExtraMinutesPerVisit float64                `json:"extra_minutes_per_visit"`
	AddedMonthlyHours    decimal.Decimal        `json:"added_monthly_hours"`
	AddedMonthlyCost     decimal.Decimal        `json:"added_monthly_cost"`
}

// Explanation is the "why this price" record. Money and hours are rounded to two places.
type Explanation struct {
	RateUsed               decimal.Decimal             `json:"rate_used"`
	RateSource             RateSource                  `json:"rate_source"`
	BurdenMultiplier       float64                     `json:"burden_multiplier"`
	MonthlyHours           decimal.Decimal             `json:"monthly_hours"`
	TotalSquareFootage     float64                     `json:"total_square_footage"`
	EffectiveHourlyRevenue decimal.Decimal             `json:"effective_hourly_revenue"`
	PricePerSqft           *decimal.Decimal            `json:"price_per_sqft,omitempty"`
	Labor                  []LaborLine                 `json:"labor"`
	DayPorter              *DayPorterContribution      `json:"day_porter,omitempty"`
	Consumables            *ConsumablesContribution    `json:"consumables,omitempty"`
	Specialization         *SpecializationContribution `json:"specialization,omitempty"`
	Strategy               StrategyApplied             `json:"strategy"`
}

type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	if policy.HybridMarketWeight < 0 || policy.HybridMarketWeight > 1 {
		policy.HybridMarketWeight = DefaultPolicy().HybridMarketWeight
	}
	return &Calculator{policy: policy}
}

// Calculate prices a workload with the default policy.
func Calculate(s scope.Snapshot, w workload.Result) (Result, error) {
	return NewCalculator(DefaultPolicy()).Calculate(s, w)
}

// Calculate builds the cost stack for the workload computed from s and
// applies the snapshot's pricing strategy. w must come from the same
// snapshot.
func (c *Calculator) Calculate(s scope.Snapshot, w workload.Result) (Result, error) {
	if len(s.Areas) == 0 {
		return Result{}, scope.Insufficient("scope has no areas")
	}

	warnings := []string{}
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	rate, source := s.LaborRates.CleanerRate, RateFlat
	if ww, ok := CalculateWeightedWage(s.Crew); ok {
		rate, source = ww.WeightedAvgRate, RateWeightedCrew
	}
	if rate <= 0 && w.MonthlyHours > 0 {
		warnf("cleaner rate is zero; cleaning labor is not costed")
	}
	burden := s.Burden.Multiplier()

	var b Breakdown
	labor := []LaborLine{}
	addLabor := func(role string, hours, hourly float64) float64 {
		cost := hours * hourly * burden
		labor = append(labor, LaborLine{Role: role, MonthlyHours: round2(hours), HourlyRate: round2(hourly), MonthlyCost: round2(cost)})
		return cost
	}

	b.CleaningLaborCost = addLabor("cleaner", w.MonthlyHours, rate)

	if w.LeadNeeded {
		leadHours := w.ScheduledVisitsPerWeek * math.Min(w.HoursPerVisit, w.ShiftHours) * scope.WeeksPerMonth
		if w.ScheduledVisitsPerWeek <= 0 {
			warnf("a lead is needed but the schedule has no visits; lead labor is not costed")
		}
		if s.LaborRates.LeadRate <= 0 {
			warnf("a lead is needed but the lead rate is zero")
		}
		b.LeadLaborCost = addLabor("lead", leadHours, s.LaborRates.LeadRate)
	}

	if s.Schedule.SupervisorHoursPerWeek > 0 {
		b.SupervisorLaborCost = addLabor("supervisor",
			s.Schedule.SupervisorHoursPerWeek*scope.WeeksPerMonth, s.LaborRates.SupervisorRate)
	}

	var exp Explanation
	if dp := CalculateDayPorter(s.DayPorter); dp.MonthlyHours > 0 {
		b.DayPorterCost = dp.MonthlyCost * burden
		exp.DayPorter = &DayPorterContribution{MonthlyHours: round2(dp.MonthlyHours), MonthlyCost: round2(b.DayPorterCost)}
	}

	b.BurdenedLaborCost = b.CleaningLaborCost + b.LeadLaborCost + b.SupervisorLaborCost + b.DayPorterCost

	if len(s.ConsumableItems) > 0 {
		cons := CalculateConsumables(s.ConsumableItems)
		b.SuppliesCost = cons.TotalMonthly
		warnings = append(warnings, cons.Warnings...)
		exp.Consumables = &ConsumablesContribution{TotalMonthly: round2(cons.TotalMonthly), Items: cons.Items}
	} else {
		b.SuppliesCost = s.Supplies.AllowancePerSqftMonthly*w.TotalSquareFootage + s.Supplies.ConsumablesMonthly
	}

	for _, e := range s.Equipment {
		dep, ok := e.MonthlyDepreciation()
		if !ok {
			warnf("equipment %q has no useful life; not depreciated", e.Name)
			continue
		}
		b.EquipmentCost += dep
	}
	b.OverheadCost = s.Overhead.MonthlyOverheadAllocated

	var t Totals
	t.TotalMonthlyCost = b.BurdenedLaborCost + b.SuppliesCost + b.EquipmentCost + b.OverheadCost

	price, applied, strategyWarnings, err := c.applyStrategy(s.PricingStrategy, t.TotalMonthlyCost)
	if err != nil {
		return Result{}, err
	}
	warnings = append(warnings, strategyWarnings...)

	t.RecommendedPrice = price
	t.GrossProfit = price - t.TotalMonthlyCost
	t.EffectiveMarginPct = MarginPct(price, t.TotalMonthlyCost)
	if price > 0 && price < t.TotalMonthlyCost {
		warnf("recommended price is below total monthly cost")
	}

	exp.RateUsed = round2(rate)
	exp.RateSource = source
	exp.BurdenMultiplier = burden
	exp.MonthlyHours = round2(w.MonthlyHours)
	exp.TotalSquareFootage = w.TotalSquareFootage
	exp.Labor = labor
	exp.Strategy = applied
	if w.MonthlyHours > 0 {
		exp.EffectiveHourlyRevenue = round2(price / w.MonthlyHours)
	} else {
		exp.EffectiveHourlyRevenue = decimal.Zero
	}
	if w.TotalSquareFootage > 0 {
		perSqft := decimal.NewFromFloat(price / w.TotalSquareFootage).Round(4)
		exp.PricePerSqft = &perSqft
	}
	if w.Specialization != nil {
		hours := w.Specialization.AddedWeeklyMinutes * scope.WeeksPerMonth / 60
		exp.Specialization = &SpecializationContribution{
			BidType:              w.Specialization.BidType,
			Multiplier:           w.Specialization.Multiplier,
			ExtraMinutesPerVisit: w.Specialization.ExtraMinutesPerVisit,
			AddedMonthlyHours:    round2(hours),
			AddedMonthlyCost:     round2(hours * rate * burden),
		}
	}

	return Result{Method: applied.Method, Breakdown: b, Totals: t, Explanation: exp, Warnings: warnings}, nil
}

// MarginPct is (price − cost) / price × 100, or 0 when price is 0.
func MarginPct(price, cost float64) float64 {
	if price == 0 {
		return 0
	}
	return (price - cost) / price * 100
}

// round2 rounds money and hour figures for display.
func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
