package estimate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Summary renders the plain-text "why this price" sheet for an estimate.
func Summary(e Estimate) string {
	w, p := e.Workload, e.Pricing
	exp := p.Explanation

	var b strings.Builder
	fmt.Fprintf(&b, "Workload\n")
	fmt.Fprintf(&b, "  Square footage:      %s\n", num(w.TotalSquareFootage, 0))
	fmt.Fprintf(&b, "  Minutes per visit:   %s\n", num(w.TotalMinutesPerVisit, 1))
	fmt.Fprintf(&b, "  Weekly minutes:      %s\n", num(w.WeeklyMinutes, 1))
	fmt.Fprintf(&b, "  Monthly hours:       %s\n", num(w.MonthlyHours, 2))
	fmt.Fprintf(&b, "  Cleaners per visit:  %d", w.CleanersNeeded)
	if w.LeadNeeded {
		b.WriteString(" + lead")
	}
	b.WriteString("\n")
	if w.Specialization != nil {
		fmt.Fprintf(&b, "  Specialization:      %s (x%s, +%s min/visit)\n",
			w.Specialization.BidType, num(w.Specialization.Multiplier, 2), num(w.Specialization.ExtraMinutesPerVisit, 1))
	}

	fmt.Fprintf(&b, "\nCosts (monthly)\n")
	fmt.Fprintf(&b, "  Rate used:           %s/h (%s)\n", exp.RateUsed.StringFixed(2), exp.RateSource)
	fmt.Fprintf(&b, "  Burden multiplier:   %s\n", num(exp.BurdenMultiplier, 4))
	for _, l := range exp.Labor {
		fmt.Fprintf(&b, "  %-20s %s h x %s = %s\n", l.Role+" labor:", l.MonthlyHours.StringFixed(2), l.HourlyRate.StringFixed(2), l.MonthlyCost.StringFixed(2))
	}
	if exp.DayPorter != nil {
		fmt.Fprintf(&b, "  %-20s %s h = %s\n", "day porter:", exp.DayPorter.MonthlyHours.StringFixed(2), exp.DayPorter.MonthlyCost.StringFixed(2))
	}
	fmt.Fprintf(&b, "  Labor total:         %s\n", money(p.Breakdown.BurdenedLaborCost))
	fmt.Fprintf(&b, "  Supplies:            %s\n", money(p.Breakdown.SuppliesCost))
	fmt.Fprintf(&b, "  Equipment:           %s\n", money(p.Breakdown.EquipmentCost))
	fmt.Fprintf(&b, "  Overhead:            %s\n", money(p.Breakdown.OverheadCost))
	fmt.Fprintf(&b, "  Total cost:          %s\n", money(p.Totals.TotalMonthlyCost))

	fmt.Fprintf(&b, "\nPrice\n")
	fmt.Fprintf(&b, "  Method:              %s\n", exp.Strategy.Method)
	fmt.Fprintf(&b, "  Recommended price:   %s\n", money(p.Totals.RecommendedPrice))
	fmt.Fprintf(&b, "  Effective margin:    %s%%\n", num(p.Totals.EffectiveMarginPct, 2))
	fmt.Fprintf(&b, "  Revenue per hour:    %s\n", exp.EffectiveHourlyRevenue.StringFixed(2))
	if exp.PricePerSqft != nil {
		fmt.Fprintf(&b, "  Price per sqft:      %s\n", exp.PricePerSqft.StringFixed(4))
	}

	if warnings := e.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings\n")
		for _, msg := range warnings {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return b.String()
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func num(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
