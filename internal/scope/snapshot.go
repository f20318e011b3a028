// Package scope holds the input model of the scope-to-price engine, its
// static lookup tables, invariant validation and the express scope generator.
package scope

import "github.com/Simplici0/cleanbid/internal/specialization"

type Difficulty string

const (
	DifficultyEasy      Difficulty = "EASY"
	DifficultyStandard  Difficulty = "STANDARD"
	DifficultyDifficult Difficulty = "DIFFICULT"
)

type FrequencyCode string

const (
	FrequencyDaily      FrequencyCode = "DAILY"
	FrequencyFiveWeekly FrequencyCode = "5X_WEEK"
	FrequencyThreeWeek  FrequencyCode = "3X_WEEK"
	FrequencyTwiceWeek  FrequencyCode = "2X_WEEK"
	FrequencyWeekly     FrequencyCode = "WEEKLY"
	FrequencyBiweekly   FrequencyCode = "BIWEEKLY"
	FrequencyMonthly    FrequencyCode = "MONTHLY"
	FrequencyAsNeeded   FrequencyCode = "AS_NEEDED"
)

type RateUnit string

const (
	UnitSqftPer1000 RateUnit = "SQFT_PER_1000"
	UnitEach        RateUnit = "EACH"
)

type PricingMethod string

const (
	MethodCostPlus     PricingMethod = "COST_PLUS"
	MethodTargetMargin PricingMethod = "TARGET_MARGIN"
	MethodMarketRate   PricingMethod = "MARKET_RATE"
	MethodHybrid       PricingMethod = "HYBRID"
)

// Snapshot is the complete, immutable description of a job that every
// calculation runs against.
type Snapshot struct {
	Areas           []Area                   `json:"areas" yaml:"areas"`
	GeneralTasks    []GeneralTask            `json:"general_tasks,omitempty" yaml:"general_tasks,omitempty"`
	Schedule        Schedule                 `json:"schedule" yaml:"schedule"`
	LaborRates      LaborRates               `json:"labor_rates" yaml:"labor_rates"`
	Burden          Burden                   `json:"burden" yaml:"burden"`
	Overhead        Overhead                 `json:"overhead" yaml:"overhead"`
	Supplies        Supplies                 `json:"supplies" yaml:"supplies"`
	Equipment       []EquipmentItem          `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	ProductionRates []ProductionRate         `json:"production_rates,omitempty" yaml:"production_rates,omitempty"`
	PricingStrategy PricingStrategy          `json:"pricing_strategy" yaml:"pricing_strategy"`
	Specialization  *specialization.Envelope `json:"specialization,omitempty" yaml:"specialization,omitempty"`
	Crew            []CrewMember             `json:"crew,omitempty" yaml:"crew,omitempty"`
	DayPorter       *DayPorter               `json:"day_porter,omitempty" yaml:"day_porter,omitempty"`
	ConsumableItems []ConsumableItem         `json:"consumable_items,omitempty" yaml:"consumable_items,omitempty"`
}

type Area struct {
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	AreaType      string         `json:"area_type" yaml:"area_type"`
	FloorType     string         `json:"floor_type" yaml:"floor_type"`
	BuildingType  string         `json:"building_type" yaml:"building_type"`
	Difficulty    Difficulty     `json:"difficulty" yaml:"difficulty"`
	SquareFootage float64        `json:"square_footage" yaml:"square_footage"`
	Quantity      int            `json:"quantity" yaml:"quantity"`
	Fixtures      map[string]int `json:"fixtures,omitempty" yaml:"fixtures,omitempty"`
	Tasks         []AreaTask     `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// AreaTask is one task performed in an area. CustomMinutes, when set,
// replaces the computed per-visit minutes for the task.
type AreaTask struct {
	TaskCode      string        `json:"task_code" yaml:"task_code"`
	FrequencyCode FrequencyCode `json:"frequency_code" yaml:"frequency_code"`
	UseAI         bool          `json:"use_ai" yaml:"use_ai"`
	CustomMinutes *float64      `json:"custom_minutes,omitempty" yaml:"custom_minutes,omitempty"`
}

// GeneralTask is building-wide work done once per scheduled visit.
type GeneralTask struct {
	TaskCode        string  `json:"task_code" yaml:"task_code"`
	MinutesPerVisit float64 `json:"minutes_per_visit" yaml:"minutes_per_visit"`
}

type Schedule struct {
	DaysPerWeek            float64 `json:"days_per_week" yaml:"days_per_week"`
	VisitsPerDay           float64 `json:"visits_per_day" yaml:"visits_per_day"`
	HoursPerShift          float64 `json:"hours_per_shift" yaml:"hours_per_shift"`
	LeadRequired           bool    `json:"lead_required" yaml:"lead_required"`
	SupervisorHoursPerWeek float64 `json:"supervisor_hours_per_week" yaml:"supervisor_hours_per_week"`
}

// VisitsPerWeek is the number of scheduled visits in a week. A zero
// visits-per-day value counts as a single visit.
func (s Schedule) VisitsPerWeek() float64 {
	perDay := s.VisitsPerDay
	if perDay <= 0 {
		perDay = 1
	}
	if s.DaysPerWeek <= 0 {
		return 0
	}
	return s.DaysPerWeek * perDay
}

type LaborRates struct {
	CleanerRate    float64 `json:"cleaner_rate" yaml:"cleaner_rate"`
	LeadRate       float64 `json:"lead_rate" yaml:"lead_rate"`
	SupervisorRate float64 `json:"supervisor_rate" yaml:"supervisor_rate"`
}

// Burden percentages are additive.
type Burden struct {
	EmployerTaxPct float64 `json:"employer_tax_pct" yaml:"employer_tax_pct"`
	WorkersCompPct float64 `json:"workers_comp_pct" yaml:"workers_comp_pct"`
	InsurancePct   float64 `json:"insurance_pct" yaml:"insurance_pct"`
	OtherPct       float64 `json:"other_pct" yaml:"other_pct"`
}

// TotalPct is the sum of every burden component.
func (b Burden) TotalPct() float64 {
	return b.EmployerTaxPct + b.WorkersCompPct + b.InsurancePct + b.OtherPct
}

// Multiplier converts the stacked percentages into a wage multiplier.
func (b Burden) Multiplier() float64 {
	return 1 + b.TotalPct()/100
}

type Overhead struct {
	MonthlyOverheadAllocated float64 `json:"monthly_overhead_allocated" yaml:"monthly_overhead_allocated"`
}

type Supplies struct {
	AllowancePerSqftMonthly float64 `json:"allowance_per_sqft_monthly" yaml:"allowance_per_sqft_monthly"`
	ConsumablesMonthly      float64 `json:"consumables_monthly" yaml:"consumables_monthly"`
}

// EquipmentItem depreciates PurchaseCost over UsefulLifeMonths. Only
// AllocationPct of it is charged to this job; zero means all of it.
type EquipmentItem struct {
	Name             string  `json:"name" yaml:"name"`
	PurchaseCost     float64 `json:"purchase_cost" yaml:"purchase_cost"`
	UsefulLifeMonths float64 `json:"useful_life_months" yaml:"useful_life_months"`
	AllocationPct    float64 `json:"allocation_pct,omitempty" yaml:"allocation_pct,omitempty"`
}

// MonthlyDepreciation returns the monthly charge, or false when the item
// has no usable life to spread its cost over.
func (e EquipmentItem) MonthlyDepreciation() (float64, bool) {
	if e.UsefulLifeMonths <= 0 {
		return 0, false
	}
	share := 1.0
	if e.AllocationPct > 0 {
		share = e.AllocationPct / 100
	}
	return e.PurchaseCost / e.UsefulLifeMonths * share, true
}

// ProductionRate is one row of the reference table. Empty FloorType or
// BuildingType match any value.
type ProductionRate struct {
	ID               int64    `json:"id,omitempty" yaml:"id,omitempty"`
	TaskCode         string   `json:"task_code" yaml:"task_code"`
	FloorType        string   `json:"floor_type,omitempty" yaml:"floor_type,omitempty"`
	BuildingType     string   `json:"building_type,omitempty" yaml:"building_type,omitempty"`
	Unit             RateUnit `json:"unit" yaml:"unit"`
	BaseMinutes      float64  `json:"base_minutes" yaml:"base_minutes"`
	AdjustmentFactor float64  `json:"adjustment_factor" yaml:"adjustment_factor"`
}

// Factor returns the adjustment factor, reading an unset value as 1.
func (r ProductionRate) Factor() float64 {
	if r.AdjustmentFactor == 0 {
		return 1
	}
	return r.AdjustmentFactor
}

type PricingStrategy struct {
	Method             PricingMethod `json:"method" yaml:"method"`
	TargetMarginPct    *float64      `json:"target_margin_pct,omitempty" yaml:"target_margin_pct,omitempty"`
	CostPlusPct        *float64      `json:"cost_plus_pct,omitempty" yaml:"cost_plus_pct,omitempty"`
	MarketPriceMonthly *float64      `json:"market_price_monthly,omitempty" yaml:"market_price_monthly,omitempty"`
	MarketRateLow      *float64      `json:"market_rate_low,omitempty" yaml:"market_rate_low,omitempty"`
	MarketRateHigh     *float64      `json:"market_rate_high,omitempty" yaml:"market_rate_high,omitempty"`
	HybridMarketWeight *float64      `json:"hybrid_market_weight,omitempty" yaml:"hybrid_market_weight,omitempty"`
}

type CrewMember struct {
	Role        string  `json:"role" yaml:"role"`
	HourlyRate  float64 `json:"hourly_rate" yaml:"hourly_rate"`
	WeeklyHours float64 `json:"weekly_hours" yaml:"weekly_hours"`
}

type DayPorter struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	DaysPerWeek float64 `json:"days_per_week" yaml:"days_per_week"`
	HoursPerDay float64 `json:"hours_per_day" yaml:"hours_per_day"`
	HourlyRate  float64 `json:"hourly_rate" yaml:"hourly_rate"`
}

type ConsumableItem struct {
	Name                     string  `json:"name" yaml:"name"`
	Category                 string  `json:"category" yaml:"category"`
	UnitCost                 float64 `json:"unit_cost" yaml:"unit_cost"`
	UnitsPerOccupantPerMonth float64 `json:"units_per_occupant_per_month" yaml:"units_per_occupant_per_month"`
	OccupantCount            int     `json:"occupant_count" yaml:"occupant_count"`
}

// Spec returns the specialization variant, or nil when none is set.
func (s Snapshot) Spec() specialization.Specialization {
	return s.Specialization.Specialization()
}

// TotalSquareFootage sums square footage × quantity across all areas.
func (s Snapshot) TotalSquareFootage() float64 {
	var total float64
	for _, a := range s.Areas {
		total += a.SquareFootage * float64(a.EffectiveQuantity())
	}
	return total
}

// EffectiveQuantity reads a quantity below one as one.
func (a Area) EffectiveQuantity() int {
	if a.Quantity < 1 {
		return 1
	}
	return a.Quantity
}

// Float returns a pointer to v, for optional snapshot fields.
func Float(v float64) *float64 {
	return &v
}
