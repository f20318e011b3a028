package pricing

import "github.com/Simplici0/cleanbid/internal/scope"

// WeightedWage is the hour-weighted average wage of a crew.
type WeightedWage struct {
	WeightedAvgRate  float64 `json:"weighted_avg_rate"`
	TotalWeeklyHours float64 `json:"total_weekly_hours"`
}

// CalculateWeightedWage returns Σ(rate×hours)/Σhours. It reports false when
// the crew has no scheduled hours, in which case callers fall back to the
// flat cleaner rate.
func CalculateWeightedWage(crew []scope.CrewMember) (WeightedWage, bool) {
	var cost, hours float64
	for _, m := range crew {
		if m.WeeklyHours <= 0 {
			continue
		}
		cost += m.HourlyRate * m.WeeklyHours
		hours += m.WeeklyHours
	}
	if hours == 0 {
		return WeightedWage{}, false
	}
	return WeightedWage{WeightedAvgRate: cost / hours, TotalWeeklyHours: hours}, true
}
