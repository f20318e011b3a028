// Package workload turns a scope snapshot into labor minutes, hours and a
// crew-size recommendation.
package workload

import (
	"fmt"
	"math"

	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/specialization"
)

// Policy holds the tunable thresholds of the workload model.
type Policy struct {
	// LeadNeeded is forced once CleanersNeeded exceeds this.
	LeadCrewThreshold int     `json:"lead_crew_threshold"`
	MinSqftPerCleaner float64 `json:"min_sqft_per_cleaner"`
	DefaultShiftHours float64 `json:"default_shift_hours"`
}

// DefaultPolicy returns the thresholds used when none are configured.
func DefaultPolicy() Policy {
	return Policy{
		LeadCrewThreshold: 3,
		MinSqftPerCleaner: 1000,
		DefaultShiftHours: 8,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.LeadCrewThreshold <= 0 {
		p.LeadCrewThreshold = d.LeadCrewThreshold
	}
	if p.MinSqftPerCleaner <= 0 {
		p.MinSqftPerCleaner = d.MinSqftPerCleaner
	}
	if p.DefaultShiftHours <= 0 {
		p.DefaultShiftHours = d.DefaultShiftHours
	}
	return p
}

// TaskSource says where a task's per-visit minutes came from.
type TaskSource string

const (
	SourceRate       TaskSource = "RATE"
	SourceCustom     TaskSource = "CUSTOM"
	SourceUnresolved TaskSource = "UNRESOLVED"
)

type TaskLoad struct {
	TaskCode        string              `json:"task_code"`
	FrequencyCode   scope.FrequencyCode `json:"frequency_code"`
	Source          TaskSource          `json:"source"`
	Precedence      Precedence          `json:"precedence,omitempty"`
	MinutesPerVisit float64             `json:"minutes_per_visit"`
	VisitsPerWeek   float64             `json:"visits_per_week"`
	WeeklyMinutes   float64             `json:"weekly_minutes"`
}

type AreaLoad struct {
	AreaID        string     `json:"area_id"`
	Name          string     `json:"name"`
	WeeklyMinutes float64    `json:"weekly_minutes"`
	Tasks         []TaskLoad `json:"tasks"`
}

// SpecializationImpact is the share of the workload a specialization added.
type SpecializationImpact struct {
	BidType              specialization.BidType `json:"bid_type"`
	Multiplier           float64                `json:"multiplier"`
	ExtraMinutesPerVisit float64                `json:"extra_minutes_per_visit"`
	AddedWeeklyMinutes   float64                `json:"added_weekly_minutes"`
}

// Result is the workload estimate for one snapshot.
type Result struct {
	TotalMinutesPerVisit   float64               `json:"total_minutes_per_visit"`
	WeeklyMinutes          float64               `json:"weekly_minutes"`
	MonthlyMinutes         float64               `json:"monthly_minutes"`
	MonthlyHours           float64               `json:"monthly_hours"`
	HoursPerVisit          float64               `json:"hours_per_visit"`
	CleanersNeeded         int                   `json:"cleaners_needed"`
	LeadNeeded             bool                  `json:"lead_needed"`
	Warnings               []string              `json:"warnings"`
	TotalSquareFootage     float64               `json:"total_square_footage"`
	ScheduledVisitsPerWeek float64               `json:"scheduled_visits_per_week"`
	ShiftHours             float64               `json:"shift_hours"`
	GeneralWeeklyMinutes   float64               `json:"general_weekly_minutes"`
	Specialization         *SpecializationImpact `json:"specialization,omitempty"`
	Areas                  []AreaLoad            `json:"areas"`
}

// Calculator computes workloads under a fixed policy.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy.withDefaults()}
}

// Calculate runs the workload model with the default policy.
func Calculate(s scope.Snapshot) (Result, error) {
	return NewCalculator(DefaultPolicy()).Calculate(s)
}

// Calculate never fails on partial data: unresolved rates and unknown codes
// contribute zero minutes and add a warning. It returns
// scope.ErrInsufficientData when the snapshot cannot be calculated yet.
func (c *Calculator) Calculate(s scope.Snapshot) (Result, error) {
	if len(s.Areas) == 0 {
		return Result{}, scope.Insufficient("scope has no areas")
	}
	if len(s.ProductionRates) == 0 && needsRates(s) {
		return Result{}, scope.Insufficient("no production rates loaded")
	}

	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	spec := s.Spec()
	adj := specialization.Adjust(spec)
	for _, code := range adj.Unmatched {
		warnf("specialization %s: unknown %s, no factor applied", spec.BidType(), code)
	}
	visits := s.Schedule.VisitsPerWeek()

	res := Result{
		TotalSquareFootage:     s.TotalSquareFootage(),
		ScheduledVisitsPerWeek: visits,
		Areas:                  make([]AreaLoad, 0, len(s.Areas)),
	}

	var weekly, perVisitSum, specWeekly float64
	for _, area := range s.Areas {
		load := AreaLoad{AreaID: area.ID, Name: area.Name, Tasks: make([]TaskLoad, 0, len(area.Tasks))}

		difficulty, ok := scope.DifficultyMultiplier(area.Difficulty)
		if !ok {
			warnf("area %q: unknown difficulty %q, using STANDARD", area.Name, area.Difficulty)
			difficulty = 1
		}

		for _, task := range area.Tasks {
			tl := TaskLoad{TaskCode: task.TaskCode, FrequencyCode: task.FrequencyCode}

			freq, ok := scope.VisitsPerWeek(task.FrequencyCode)
			if !ok {
				warnf("area %q task %s: unknown frequency %q", area.Name, task.TaskCode, task.FrequencyCode)
			}
			tl.VisitsPerWeek = freq

			switch {
			case task.CustomMinutes != nil:
				tl.Source = SourceCustom
				tl.MinutesPerVisit = *task.CustomMinutes
			default:
				match, found := ResolveRate(task.TaskCode, area.FloorType, area.BuildingType, s.ProductionRates)
				if !found {
					tl.Source = SourceUnresolved
					warnf("area %q task %s: no production rate found", area.Name, task.TaskCode)
					break
				}
				base := match.Rate.BaseMinutes * match.Rate.Factor() * difficulty * Scale(match.Rate.Unit, area)
				tl.Source = SourceRate
				tl.Precedence = match.Precedence
				tl.MinutesPerVisit = base * adj.Multiplier
				specWeekly += (tl.MinutesPerVisit - base) * freq
			}

			tl.WeeklyMinutes = tl.MinutesPerVisit * freq
			load.WeeklyMinutes += tl.WeeklyMinutes
			if freq > 0 {
				perVisitSum += tl.MinutesPerVisit
			}
			load.Tasks = append(load.Tasks, tl)
		}

		weekly += load.WeeklyMinutes
		res.Areas = append(res.Areas, load)
	}

	var generalPerVisit float64
	for _, g := range s.GeneralTasks {
		generalPerVisit += g.MinutesPerVisit
	}
	res.GeneralWeeklyMinutes = generalPerVisit * visits
	extraWeekly := adj.ExtraMinutesPerVisit * visits
	if visits == 0 && (generalPerVisit > 0 || adj.ExtraMinutesPerVisit > 0) {
		warnf("schedule has no days per week; per-visit general and specialization minutes are not counted weekly")
	}
	weekly += res.GeneralWeeklyMinutes + extraWeekly
	perVisitSum += generalPerVisit + adj.ExtraMinutesPerVisit

	if spec != nil {
		res.Specialization = &SpecializationImpact{
			BidType:              spec.BidType(),
			Multiplier:           adj.Multiplier,
			ExtraMinutesPerVisit: adj.ExtraMinutesPerVisit,
			AddedWeeklyMinutes:   specWeekly + extraWeekly,
		}
	}

	res.WeeklyMinutes = weekly
	res.MonthlyMinutes = weekly * scope.WeeksPerMonth
	res.MonthlyHours = res.MonthlyMinutes / 60

	// A visit is sized as the one where every scheduled task falls due, so a
	// weekly deep clean is never averaged away across the daily visits.
	res.TotalMinutesPerVisit = perVisitSum
	res.HoursPerVisit = res.TotalMinutesPerVisit / 60

	shift := s.Schedule.HoursPerShift
	if shift <= 0 {
		shift = c.policy.DefaultShiftHours
		warnf("hours per shift not set; assuming %.1f-hour shifts", shift)
	}
	res.ShiftHours = shift

	res.CleanersNeeded = int(math.Ceil(res.HoursPerVisit / shift))
	if res.CleanersNeeded < 1 {
		res.CleanersNeeded = 1
	}
	res.LeadNeeded = s.Schedule.LeadRequired || res.CleanersNeeded > c.policy.LeadCrewThreshold

	if res.TotalSquareFootage == 0 {
		warnf("total square footage is zero; square-foot based tasks contribute no minutes")
	}
	if res.HoursPerVisit > shift {
		warnf("one visit needs %.2f hours, longer than a %.1f-hour shift", res.HoursPerVisit, shift)
	}
	if res.CleanersNeeded > 1 && res.TotalSquareFootage/float64(res.CleanersNeeded) < c.policy.MinSqftPerCleaner {
		warnf("%d cleaners for %.0f sqft is unusually high", res.CleanersNeeded, res.TotalSquareFootage)
	}

	res.Warnings = warnings
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	return res, nil
}

func needsRates(s scope.Snapshot) bool {
	for _, a := range s.Areas {
		for _, t := range a.Tasks {
			if t.CustomMinutes == nil {
				return true
			}
		}
	}
	return false
}
