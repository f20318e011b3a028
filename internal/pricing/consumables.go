package pricing

import (
	"fmt"

	"github.com/Simplici0/cleanbid/internal/scope"
)

// ItemCost is the monthly cost of one consumable line.
type ItemCost struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	MonthlyCost float64 `json:"monthly_cost"`
}

type ConsumablesResult struct {
	TotalMonthly float64    `json:"total_monthly"`
	Items        []ItemCost `json:"items"`
	Warnings     []string   `json:"warnings"`
}

// CalculateConsumables costs each item as unit cost × units per occupant ×
// occupants. An item with no occupants costs nothing and is flagged.
func CalculateConsumables(items []scope.ConsumableItem) ConsumablesResult {
	res := ConsumablesResult{Items: make([]ItemCost, 0, len(items)), Warnings: []string{}}
	for _, item := range items {
		line := ItemCost{Name: item.Name, Category: item.Category}
		if item.OccupantCount <= 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("consumable %q has no occupant count; costed at zero", item.Name))
		} else {
			line.MonthlyCost = item.UnitCost * item.UnitsPerOccupantPerMonth * float64(item.OccupantCount)
		}
		res.TotalMonthly += line.MonthlyCost
		res.Items = append(res.Items, line)
	}
	return res
}
