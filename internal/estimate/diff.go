package estimate

// Change is one headline figure that differs between two estimates.
type Change struct {
	Field     string   `json:"field"`
	From      float64  `json:"from"`
	To        float64  `json:"to"`
	Delta     float64  `json:"delta"`
	PctChange *float64 `json:"pct_change,omitempty"`
}

type figure struct {
	field string
	get   func(Estimate) float64
}

var figures = []figure{
	{"weekly_minutes", func(e Estimate) float64 { return e.Workload.WeeklyMinutes }},
	{"monthly_hours", func(e Estimate) float64 { return e.Workload.MonthlyHours }},
	{"cleaners_needed", func(e Estimate) float64 { return float64(e.Workload.CleanersNeeded) }},
	{"total_square_footage", func(e Estimate) float64 { return e.Workload.TotalSquareFootage }},
	{"burdened_labor_cost", func(e Estimate) float64 { return e.Pricing.Breakdown.BurdenedLaborCost }},
	{"supplies_cost", func(e Estimate) float64 { return e.Pricing.Breakdown.SuppliesCost }},
	{"equipment_cost", func(e Estimate) float64 { return e.Pricing.Breakdown.EquipmentCost }},
	{"overhead_cost", func(e Estimate) float64 { return e.Pricing.Breakdown.OverheadCost }},
	{"total_monthly_cost", func(e Estimate) float64 { return e.Pricing.Totals.TotalMonthlyCost }},
	{"recommended_price", func(e Estimate) float64 { return e.Pricing.Totals.RecommendedPrice }},
	{"effective_margin_pct", func(e Estimate) float64 { return e.Pricing.Totals.EffectiveMarginPct }},
}

// Diff lists the headline figures that changed from a to b, in a fixed
// order. PctChange is omitted when the old value is zero.
func Diff(a, b Estimate) []Change {
	changes := []Change{}
	for _, f := range figures {
		from, to := f.get(a), f.get(b)
		if from == to {
			continue
		}
		c := Change{Field: f.field, From: from, To: to, Delta: to - from}
		if from != 0 {
			pct := (to - from) / from * 100
			c.PctChange = &pct
		}
		changes = append(changes, c)
	}
	return changes
}
