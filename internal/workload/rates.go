package workload

import (
	"strings"

	"github.com/Simplici0/cleanbid/internal/scope"
)

// Precedence records which level of the fallback chain matched a rate.
type Precedence string

const (
	MatchExact    Precedence = "task+floor+building"
	MatchFloor    Precedence = "task+floor"
	MatchBuilding Precedence = "task+building"
	MatchTask     Precedence = "task"
)

// RateMatch is a resolved production rate.
type RateMatch struct {
	Rate       scope.ProductionRate `json:"rate"`
	Precedence Precedence           `json:"precedence"`
}

// ResolveRate finds the production rate for a task. Matching precedence is
// (task, floor, building), then (task, floor, any), then (task, any,
// building), then (task, any, any); the first match in table order wins.
func ResolveRate(taskCode, floorType, buildingType string, rates []scope.ProductionRate) (RateMatch, bool) {
	type key struct {
		floor, building string
		level           Precedence
	}
	floor, building := norm(floorType), norm(buildingType)
	chain := []key{
		{floor, building, MatchExact},
		{floor, "", MatchFloor},
		{"", building, MatchBuilding},
		{"", "", MatchTask},
	}

	task := norm(taskCode)
	for _, k := range chain {
		if (k.level == MatchExact && (floor == "" || building == "")) ||
			(k.level == MatchFloor && floor == "") ||
			(k.level == MatchBuilding && building == "") {
			continue
		}
		for _, r := range rates {
			if norm(r.TaskCode) == task && norm(r.FloorType) == k.floor && norm(r.BuildingType) == k.building {
				return RateMatch{Rate: r, Precedence: k.level}, true
			}
		}
	}
	return RateMatch{}, false
}

// Scale converts an area's size into the rate's unit of work.
func Scale(unit scope.RateUnit, area scope.Area) float64 {
	qty := float64(area.EffectiveQuantity())
	if scope.RateUnit(norm(string(unit))) == scope.UnitEach {
		return qty
	}
	return area.SquareFootage * qty / 1000
}

func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
