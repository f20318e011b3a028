package scope

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the snapshot invariants. The calculators tolerate most
// of these gaps during a live preview; a final calculation should not.
func Validate(s Snapshot) error {
	return s.Validate()
}

func (s Snapshot) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Areas),
		validation.Field(&s.GeneralTasks),
		validation.Field(&s.Schedule),
		validation.Field(&s.LaborRates),
		validation.Field(&s.Burden),
		validation.Field(&s.Equipment),
		validation.Field(&s.ProductionRates),
		validation.Field(&s.PricingStrategy),
		validation.Field(&s.Crew),
		validation.Field(&s.ConsumableItems),
		validation.Field(&s.DayPorter),
		validation.Field(&s.Specialization),
	)
}

func (a Area) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.SquareFootage, validation.Min(0.0)),
		validation.Field(&a.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&a.Difficulty, validation.By(knownDifficulty)),
		validation.Field(&a.Tasks),
	)
}

func (t AreaTask) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.TaskCode, validation.Required),
		validation.Field(&t.FrequencyCode, validation.Required, validation.By(knownFrequency)),
		validation.Field(&t.CustomMinutes, validation.Min(0.0)),
	)
}

func (g GeneralTask) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.TaskCode, validation.Required),
		validation.Field(&g.MinutesPerVisit, validation.Min(0.0)),
	)
}

func (s Schedule) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.DaysPerWeek, validation.Min(0.0), validation.Max(7.0)),
		validation.Field(&s.VisitsPerDay, validation.Min(0.0)),
		validation.Field(&s.HoursPerShift, validation.Min(0.0), validation.Max(24.0)),
		validation.Field(&s.SupervisorHoursPerWeek, validation.Min(0.0)),
	)
}

func (l LaborRates) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.CleanerRate, validation.Min(0.0)),
		validation.Field(&l.LeadRate, validation.Min(0.0)),
		validation.Field(&l.SupervisorRate, validation.Min(0.0)),
	)
}

func (b Burden) Validate() error {
	pct := []validation.Rule{validation.Min(0.0), validation.Max(100.0)}
	return validation.ValidateStruct(&b,
		validation.Field(&b.EmployerTaxPct, pct...),
		validation.Field(&b.WorkersCompPct, pct...),
		validation.Field(&b.InsurancePct, pct...),
		validation.Field(&b.OtherPct, pct...),
	)
}

func (e EquipmentItem) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.PurchaseCost, validation.Min(0.0)),
		validation.Field(&e.UsefulLifeMonths, validation.Required, validation.Min(0.0)),
		validation.Field(&e.AllocationPct, validation.Min(0.0), validation.Max(100.0)),
	)
}

func (r ProductionRate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TaskCode, validation.Required),
		validation.Field(&r.Unit, validation.Required, validation.In(UnitSqftPer1000, UnitEach)),
		validation.Field(&r.BaseMinutes, validation.Min(0.0)),
		validation.Field(&r.AdjustmentFactor, validation.Min(0.0)),
	)
}

func (p PricingStrategy) Validate() error {
	needsMargin := p.Method == MethodTargetMargin || p.Method == MethodHybrid
	needsMarket := p.Method == MethodMarketRate || p.Method == MethodHybrid
	return validation.ValidateStruct(&p,
		validation.Field(&p.Method, validation.Required,
			validation.In(MethodCostPlus, MethodTargetMargin, MethodMarketRate, MethodHybrid)),
		validation.Field(&p.TargetMarginPct,
			validation.When(needsMargin, validation.NotNil),
			validation.Min(0.0), validation.Max(100.0).Exclusive()),
		validation.Field(&p.CostPlusPct,
			validation.When(p.Method == MethodCostPlus, validation.NotNil),
			validation.Min(0.0)),
		validation.Field(&p.MarketPriceMonthly,
			validation.When(needsMarket, validation.NotNil),
			validation.Min(0.0)),
		validation.Field(&p.HybridMarketWeight, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&p.MarketRateHigh, validation.By(p.bandOrdered)),
	)
}

func (p PricingStrategy) bandOrdered(any) error {
	if p.MarketRateLow != nil && p.MarketRateHigh != nil && *p.MarketRateLow > *p.MarketRateHigh {
		return errors.New("must be greater than or equal to market_rate_low")
	}
	return nil
}

func (c CrewMember) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.HourlyRate, validation.Min(0.0)),
		validation.Field(&c.WeeklyHours, validation.Min(0.0)),
	)
}

func (d DayPorter) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.DaysPerWeek, validation.Min(0.0), validation.Max(7.0)),
		validation.Field(&d.HoursPerDay, validation.Min(0.0), validation.Max(24.0)),
		validation.Field(&d.HourlyRate, validation.Min(0.0)),
	)
}

func (c ConsumableItem) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.UnitCost, validation.Min(0.0)),
		validation.Field(&c.UnitsPerOccupantPerMonth, validation.Min(0.0)),
		validation.Field(&c.OccupantCount, validation.Min(0)),
	)
}

func knownDifficulty(value any) error {
	d, _ := value.(Difficulty)
	if _, ok := DifficultyMultiplier(d); !ok {
		return fmt.Errorf("unknown difficulty %q", d)
	}
	return nil
}

func knownFrequency(value any) error {
	f, _ := value.(FrequencyCode)
	if _, ok := VisitsPerWeek(f); !ok {
		return fmt.Errorf("unknown frequency code %q", f)
	}
	return nil
}
