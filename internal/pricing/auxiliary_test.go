package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/cleanbid/internal/scope"
)

func TestCalculateWeightedWage(t *testing.T) {
	ww, ok := CalculateWeightedWage([]scope.CrewMember{
		{Role: "cleaner", HourlyRate: 15, WeeklyHours: 20},
		{Role: "lead", HourlyRate: 20, WeeklyHours: 10},
	})
	require.True(t, ok)
	assert.InDelta(t, 16.67, ww.WeightedAvgRate, 0.005)
	nearlyEqual(t, "totalWeeklyHours", ww.TotalWeeklyHours, 30)
}

func TestCalculateWeightedWage_NoHours(t *testing.T) {
	_, ok := CalculateWeightedWage(nil)
	assert.False(t, ok)

	_, ok = CalculateWeightedWage([]scope.CrewMember{{HourlyRate: 15}})
	assert.False(t, ok)
}

func TestCalculateConsumables(t *testing.T) {
	res := CalculateConsumables([]scope.ConsumableItem{
		{Name: "Paper towels", Category: "PAPER", UnitCost: 1.5, UnitsPerOccupantPerMonth: 2, OccupantCount: 40},
		{Name: "Hand soap", Category: "SOAP", UnitCost: 4, UnitsPerOccupantPerMonth: 0.25, OccupantCount: 40},
		{Name: "Liners", Category: "LINERS", UnitCost: 0.1, UnitsPerOccupantPerMonth: 20},
	})

	nearlyEqual(t, "paper", res.Items[0].MonthlyCost, 120)
	nearlyEqual(t, "soap", res.Items[1].MonthlyCost, 40)
	nearlyEqual(t, "liners", res.Items[2].MonthlyCost, 0)
	nearlyEqual(t, "total", res.TotalMonthly, 160)
	assert.Len(t, res.Warnings, 1)
}

func TestCalculateDayPorter(t *testing.T) {
	res := CalculateDayPorter(&scope.DayPorter{Enabled: true, DaysPerWeek: 5, HoursPerDay: 4, HourlyRate: 16})
	nearlyEqual(t, "monthlyHours", res.MonthlyHours, 86.6)
	nearlyEqual(t, "monthlyCost", res.MonthlyCost, 1385.6)

	assert.Equal(t, DayPorterResult{}, CalculateDayPorter(&scope.DayPorter{DaysPerWeek: 5, HoursPerDay: 4, HourlyRate: 16}))
	assert.Equal(t, DayPorterResult{}, CalculateDayPorter(nil))
}
