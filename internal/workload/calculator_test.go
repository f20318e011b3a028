package workload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/specialization"
)

func officeSnapshot() scope.Snapshot {
	return scope.Snapshot{
		Areas: []scope.Area{{
			ID: "a1", Name: "Open Office", FloorType: "CARPET", BuildingType: "OFFICE",
			Difficulty: scope.DifficultyStandard, SquareFootage: 10000, Quantity: 1,
			Tasks: []scope.AreaTask{{TaskCode: "VACUUM", FrequencyCode: scope.FrequencyDaily}},
		}},
		Schedule: scope.Schedule{DaysPerWeek: 5, VisitsPerDay: 1, HoursPerShift: 8},
		ProductionRates: []scope.ProductionRate{
			{TaskCode: "VACUUM", Unit: scope.UnitSqftPer1000, BaseMinutes: 10, AdjustmentFactor: 1},
			{TaskCode: "CLEAN_FIXTURES", Unit: scope.UnitEach, BaseMinutes: 4},
		},
	}
}

func TestCalculate_TenThousandSqftDaily(t *testing.T) {
	res, err := Calculate(officeSnapshot())
	require.NoError(t, err)

	assert.InDelta(t, 500, res.WeeklyMinutes, 1e-9)
	assert.InDelta(t, 2165, res.MonthlyMinutes, 1e-6)
	assert.InDelta(t, 36.08, res.MonthlyHours, 0.01)
	assert.InDelta(t, 100, res.TotalMinutesPerVisit, 1e-9)
	assert.Equal(t, 1, res.CleanersNeeded)
	assert.False(t, res.LeadNeeded)
	assert.Empty(t, res.Warnings)
	assert.Nil(t, res.Specialization)

	require.Len(t, res.Areas, 1)
	require.Len(t, res.Areas[0].Tasks, 1)
	assert.Equal(t, SourceRate, res.Areas[0].Tasks[0].Source)
	assert.Equal(t, MatchTask, res.Areas[0].Tasks[0].Precedence)
}

func TestCalculate_NoAreasIsInsufficient(t *testing.T) {
	s := officeSnapshot()
	s.Areas = nil

	_, err := Calculate(s)
	assert.ErrorIs(t, err, scope.ErrInsufficientData)
}

func TestCalculate_NoRatesIsInsufficient(t *testing.T) {
	s := officeSnapshot()
	s.ProductionRates = nil

	_, err := Calculate(s)
	assert.ErrorIs(t, err, scope.ErrInsufficientData)

	s.Areas[0].Tasks[0].CustomMinutes = scope.Float(30)
	res, err := Calculate(s)
	require.NoError(t, err)
	assert.InDelta(t, 150, res.WeeklyMinutes, 1e-9)
}

func TestCalculate_Idempotent(t *testing.T) {
	s := officeSnapshot()
	s.Specialization = specialization.Wrap(specialization.Disinfecting{Method: "SPRAY_WIPE", Density: "HIGH", PPEIncluded: true})

	first, err := Calculate(s)
	require.NoError(t, err)
	second, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_DifficultyOrdering(t *testing.T) {
	weekly := func(d scope.Difficulty) float64 {
		s := officeSnapshot()
		s.Areas[0].Difficulty = d
		res, err := Calculate(s)
		require.NoError(t, err)
		return res.WeeklyMinutes
	}
	easy, standard, difficult := weekly(scope.DifficultyEasy), weekly(scope.DifficultyStandard), weekly(scope.DifficultyDifficult)

	assert.Less(t, easy, standard)
	assert.Less(t, standard, difficult)
	assert.InDelta(t, 425, easy, 1e-9)
	assert.InDelta(t, 625, difficult, 1e-9)
}

func TestCalculate_SqftScalesAndEachDoesNot(t *testing.T) {
	s := officeSnapshot()
	base, err := Calculate(s)
	require.NoError(t, err)

	s.Areas[0].SquareFootage *= 2
	doubled, err := Calculate(s)
	require.NoError(t, err)
	assert.InDelta(t, 2*base.WeeklyMinutes, doubled.WeeklyMinutes, 1e-9)

	each := officeSnapshot()
	each.Areas[0].Tasks = []scope.AreaTask{{TaskCode: "CLEAN_FIXTURES", FrequencyCode: scope.FrequencyDaily}}
	small, err := Calculate(each)
	require.NoError(t, err)

	each.Areas[0].SquareFootage = 50000
	large, err := Calculate(each)
	require.NoError(t, err)
	assert.Equal(t, small.WeeklyMinutes, large.WeeklyMinutes)
	assert.InDelta(t, 20, small.WeeklyMinutes, 1e-9)
}

func TestCalculate_CustomMinutesOverride(t *testing.T) {
	s := officeSnapshot()
	s.Areas[0].Difficulty = scope.DifficultyDifficult
	s.Areas[0].Tasks[0].CustomMinutes = scope.Float(42)

	res, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, SourceCustom, res.Areas[0].Tasks[0].Source)
	assert.InDelta(t, 42, res.Areas[0].Tasks[0].MinutesPerVisit, 1e-9)
	assert.InDelta(t, 210, res.WeeklyMinutes, 1e-9)
}

func TestCalculate_UnresolvedAndUnknownCodesWarn(t *testing.T) {
	s := officeSnapshot()
	s.Areas[0].Tasks = append(s.Areas[0].Tasks,
		scope.AreaTask{TaskCode: "POLISH_BRASS", FrequencyCode: scope.FrequencyWeekly},
		scope.AreaTask{TaskCode: "VACUUM", FrequencyCode: "HOURLY"},
	)

	res, err := Calculate(s)
	require.NoError(t, err)
	assert.InDelta(t, 500, res.WeeklyMinutes, 1e-9)
	assert.Len(t, res.Warnings, 2)
	assert.Equal(t, SourceUnresolved, res.Areas[0].Tasks[1].Source)
	assert.Zero(t, res.Areas[0].Tasks[2].WeeklyMinutes)
}

func TestCalculate_GeneralTasksAndSpecialization(t *testing.T) {
	s := officeSnapshot()
	s.GeneralTasks = []scope.GeneralTask{{TaskCode: "LOCK_UP", MinutesPerVisit: 10}}
	s.Specialization = specialization.Wrap(specialization.PostConstruction{StickerRemoval: true, WindowCount: 10})

	res, err := Calculate(s)
	require.NoError(t, err)

	adj := specialization.Adjust(s.Spec())
	assert.InDelta(t, 50, res.GeneralWeeklyMinutes, 1e-9)
	require.NotNil(t, res.Specialization)
	assert.Equal(t, specialization.BidTypePostConstruction, res.Specialization.BidType)
	assert.InDelta(t, 500*adj.Multiplier+50+adj.ExtraMinutesPerVisit*5, res.WeeklyMinutes, 1e-9)
	assert.InDelta(t, 100*adj.Multiplier+10+adj.ExtraMinutesPerVisit, res.TotalMinutesPerVisit, 1e-9)
	assert.Empty(t, res.Warnings)
}

func TestCalculate_VisitSizedByHeaviestVisit(t *testing.T) {
	s := officeSnapshot()
	s.Areas[0].Tasks = []scope.AreaTask{
		{TaskCode: "DUST", FrequencyCode: scope.FrequencyDaily, CustomMinutes: scope.Float(60)},
		{TaskCode: "STRIP_WAX", FrequencyCode: scope.FrequencyWeekly, CustomMinutes: scope.Float(480)},
	}

	res, err := Calculate(s)
	require.NoError(t, err)
	assert.InDelta(t, 780, res.WeeklyMinutes, 1e-9)
	assert.InDelta(t, 540, res.TotalMinutesPerVisit, 1e-9)
	assert.InDelta(t, 9, res.HoursPerVisit, 1e-9)
	assert.Equal(t, 2, res.CleanersNeeded)
	assertWarning(t, res, "longer than a 8.0-hour shift")

	// A daily task on a three-day schedule still takes an hour per visit.
	s = officeSnapshot()
	s.Schedule.DaysPerWeek = 3
	s.Areas[0].Tasks = []scope.AreaTask{{TaskCode: "DUST", FrequencyCode: scope.FrequencyDaily, CustomMinutes: scope.Float(60)}}

	res, err = Calculate(s)
	require.NoError(t, err)
	assert.InDelta(t, 300, res.WeeklyMinutes, 1e-9)
	assert.InDelta(t, 60, res.TotalMinutesPerVisit, 1e-9)
	assert.Equal(t, 1, res.CleanersNeeded)
}

func TestCalculate_UnknownSpecializationCodeWarns(t *testing.T) {
	s := officeSnapshot()
	s.Specialization = specialization.Wrap(specialization.Disinfecting{Method: "SPRAY", Density: "HIGH"})

	res, err := Calculate(s)
	require.NoError(t, err)
	require.NotNil(t, res.Specialization)
	assert.InDelta(t, 1, res.Specialization.Multiplier, 1e-9)
	assert.InDelta(t, 500, res.WeeklyMinutes, 1e-9)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, `specialization DISINFECTING: unknown method "SPRAY", no factor applied`, res.Warnings[0])

	s.Specialization = specialization.Wrap(specialization.Disinfecting{Method: "SPRAY_WIPE", Density: "HIGH"})
	res, err = Calculate(s)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.InDelta(t, 1.35, res.Specialization.Multiplier, 1e-9)
}

func TestCalculate_GuardrailWarnings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *scope.Snapshot)
		want   string
	}{
		{
			name: "zero square footage",
			modify: func(s *scope.Snapshot) {
				s.Areas[0].SquareFootage = 0
				s.Areas[0].Tasks = append(s.Areas[0].Tasks, scope.AreaTask{TaskCode: "DUST", FrequencyCode: scope.FrequencyDaily, CustomMinutes: scope.Float(30)})
			},
			want: "total square footage is zero",
		},
		{
			name:   "visit longer than a shift",
			modify: func(s *scope.Snapshot) { s.Areas[0].SquareFootage = 200000 },
			want:   "longer than a 8.0-hour shift",
		},
		{
			name: "crew too large for the floor area",
			modify: func(s *scope.Snapshot) {
				s.Areas[0].SquareFootage = 1000
				s.Areas[0].Tasks[0].CustomMinutes = scope.Float(1000)
			},
			want: "3 cleaners for 1000 sqft is unusually high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := officeSnapshot()
			tt.modify(&s)
			res, err := Calculate(s)
			require.NoError(t, err)
			assertWarning(t, res, tt.want)
		})
	}

	t.Run("ordinary scope", func(t *testing.T) {
		res, err := Calculate(officeSnapshot())
		require.NoError(t, err)
		assert.Empty(t, res.Warnings)
	})
}

func assertWarning(t *testing.T, res Result, substr string) {
	t.Helper()
	for _, w := range res.Warnings {
		if strings.Contains(w, substr) {
			return
		}
	}
	t.Fatalf("no warning containing %q in %q", substr, res.Warnings)
}

func TestCalculate_CrewSizeAndLead(t *testing.T) {
	s := officeSnapshot()
	s.Areas[0].SquareFootage = 200000 // 2000 minutes per visit

	res, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, 5, res.CleanersNeeded)
	assert.True(t, res.LeadNeeded)

	res, err = NewCalculator(Policy{LeadCrewThreshold: 10}).Calculate(s)
	require.NoError(t, err)
	assert.False(t, res.LeadNeeded)
}

func TestCalculate_MissingShiftUsesDefault(t *testing.T) {
	s := officeSnapshot()
	s.Schedule.HoursPerShift = 0

	res, err := Calculate(s)
	require.NoError(t, err)
	assert.Equal(t, 8.0, res.ShiftHours)
	assert.NotEmpty(t, res.Warnings)
}
