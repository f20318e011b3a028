package pricing

import (
	"fmt"
	"strings"

	"github.com/Simplici0/cleanbid/internal/scope"
)

// StrategyApplied records the strategy inputs a price was derived from.
type StrategyApplied struct {
	Method             scope.PricingMethod `json:"method"`
	CostPlusPct        *float64            `json:"cost_plus_pct,omitempty"`
	TargetMarginPct    *float64            `json:"target_margin_pct,omitempty"`
	MarketPriceMonthly *float64            `json:"market_price_monthly,omitempty"`
	MarketPriceUsed    *float64            `json:"market_price_used,omitempty"`
	TargetMarginPrice  *float64            `json:"target_margin_price,omitempty"`
	HybridMarketWeight *float64            `json:"hybrid_market_weight,omitempty"`
	MarketClamped      bool                `json:"market_clamped"`
}

func (c *Calculator) applyStrategy(ps scope.PricingStrategy, cost float64) (float64, StrategyApplied, []string, error) {
	method := scope.PricingMethod(strings.ToUpper(strings.TrimSpace(string(ps.Method))))
	applied := StrategyApplied{Method: method}
	var warnings []string

	switch method {
	case scope.MethodCostPlus:
		if ps.CostPlusPct == nil {
			return 0, applied, nil, missing("cost_plus_pct", method)
		}
		if *ps.CostPlusPct < 0 {
			return 0, applied, nil, scope.NewCalculationError(scope.ErrCodeNegativeMarkup, "cost_plus_pct",
				"cost plus percentage must not be negative, got %v", *ps.CostPlusPct)
		}
		applied.CostPlusPct = ps.CostPlusPct
		return cost * (1 + *ps.CostPlusPct/100), applied, nil, nil

	case scope.MethodTargetMargin:
		price, err := targetMarginPrice(ps, cost, method)
		if err != nil {
			return 0, applied, nil, err
		}
		applied.TargetMarginPct = ps.TargetMarginPct
		return price, applied, nil, nil

	case scope.MethodMarketRate:
		market, clamped, err := marketPrice(ps, method)
		if err != nil {
			return 0, applied, nil, err
		}
		applied.MarketPriceMonthly = ps.MarketPriceMonthly
		applied.MarketPriceUsed = &market
		applied.MarketClamped = clamped
		if clamped {
			warnings = append(warnings, fmt.Sprintf("market price %.2f clamped to %.2f", *ps.MarketPriceMonthly, market))
		}
		return market, applied, warnings, nil

	case scope.MethodHybrid:
		target, err := targetMarginPrice(ps, cost, method)
		if err != nil {
			return 0, applied, nil, err
		}
		market, clamped, err := marketPrice(ps, method)
		if err != nil {
			return 0, applied, nil, err
		}
		weight := c.policy.HybridMarketWeight
		if ps.HybridMarketWeight != nil {
			weight = *ps.HybridMarketWeight
		}
		if weight < 0 || weight > 1 {
			return 0, applied, nil, scope.NewCalculationError(scope.ErrCodeInvalidBlendWeight, "hybrid_market_weight",
				"market weight must be between 0 and 1, got %v", weight)
		}
		applied.TargetMarginPct = ps.TargetMarginPct
		applied.MarketPriceMonthly = ps.MarketPriceMonthly
		applied.MarketPriceUsed = &market
		applied.TargetMarginPrice = &target
		applied.HybridMarketWeight = &weight
		applied.MarketClamped = clamped
		if clamped {
			warnings = append(warnings, fmt.Sprintf("market price %.2f clamped to %.2f", *ps.MarketPriceMonthly, market))
		}
		return weight*market + (1-weight)*target, applied, warnings, nil

	default:
		return 0, applied, nil, scope.NewCalculationError(scope.ErrCodeUnknownMethod, "method",
			"unknown pricing method %q", ps.Method)
	}
}

func targetMarginPrice(ps scope.PricingStrategy, cost float64, method scope.PricingMethod) (float64, error) {
	if ps.TargetMarginPct == nil {
		return 0, missing("target_margin_pct", method)
	}
	margin := *ps.TargetMarginPct
	if margin < 0 || margin >= 100 {
		return 0, scope.NewCalculationError(scope.ErrCodeInvalidTargetMargin, "target_margin_pct",
			"target margin must be at least 0 and below 100, got %v", margin)
	}
	return cost / (1 - margin/100), nil
}

// marketPrice clamps the supplied market price to whichever band bounds are
// set.
func marketPrice(ps scope.PricingStrategy, method scope.PricingMethod) (float64, bool, error) {
	if ps.MarketPriceMonthly == nil {
		return 0, false, missing("market_price_monthly", method)
	}
	if ps.MarketRateLow != nil && ps.MarketRateHigh != nil && *ps.MarketRateLow > *ps.MarketRateHigh {
		return 0, false, scope.NewCalculationError(scope.ErrCodeInvalidMarketBand, "market_rate_low",
			"market band low %v is above high %v", *ps.MarketRateLow, *ps.MarketRateHigh)
	}

	price := *ps.MarketPriceMonthly
	switch {
	case ps.MarketRateLow != nil && price < *ps.MarketRateLow:
		return *ps.MarketRateLow, true, nil
	case ps.MarketRateHigh != nil && price > *ps.MarketRateHigh:
		return *ps.MarketRateHigh, true, nil
	}
	return price, false, nil
}

func missing(field string, method scope.PricingMethod) error {
	return scope.NewCalculationError(scope.ErrCodeMissingStrategyInput, field, "%s requires %s", method, field)
}
