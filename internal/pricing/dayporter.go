package pricing

import "github.com/Simplici0/cleanbid/internal/scope"

type DayPorterResult struct {
	MonthlyHours float64 `json:"monthly_hours"`
	MonthlyCost  float64 `json:"monthly_cost"`
}

// CalculateDayPorter returns the unburdened monthly hours and wage cost of a
// day porter. A nil or disabled porter costs nothing.
func CalculateDayPorter(cfg *scope.DayPorter) DayPorterResult {
	if cfg == nil || !cfg.Enabled {
		return DayPorterResult{}
	}
	hours := cfg.DaysPerWeek * cfg.HoursPerDay * scope.WeeksPerMonth
	return DayPorterResult{MonthlyHours: hours, MonthlyCost: hours * cfg.HourlyRate}
}
