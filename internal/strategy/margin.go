package strategy

import (
	"math"

	"pricing-simulator/internal/model"
)

// convexity scales how much faster demand drops for large margin deviations.
const convexity = 6.0

// MarginStrategy models a different cost/margin assumption at the same
// shelf price, with demand reacting to the margin change.
//
// The listed price never changes. Only unit cost and quantity do.
type MarginStrategy struct {
	Params model.SimulationParams
}

func (s *MarginStrategy) Name() model.Scenario { return model.ScenarioSimulated }

func (s *MarginStrategy) Apply(p model.ProductAggregate) model.ScenarioResult {
	unitCost := p.UnitPrice * (1 - s.Params.ProfitMargin)
	listed := p.UnitPrice
	qty := AdjustQuantity(p.Quantity, DemandAdjustment(s.Params.Elasticity, s.Params.ProfitMargin))
	return model.ScenarioResult{
		Description:      p.Description,
		Quantity:         p.Quantity,
		UnitPrice:        p.UnitPrice,
		UnitCost:         unitCost,
		ListedPrice:      listed,
		AdjustedQuantity: qty,
		EstimatedProfit:  (listed - unitCost) * qty,
		Scenario:         model.ScenarioSimulated,
	}
}

// DemandAdjustment returns the multiplicative demand factor for a margin:
//
//	1 - elasticity * d * (1 + |d| * 6),  d = profitMargin - 0.3
//
// The factor is 1 at the baseline margin, above 1 for smaller margins and
// below 1 for larger ones, falling faster the further the margin moves.
// It is not floored and can be negative for extreme inputs.
func DemandAdjustment(elasticity, profitMargin float64) float64 {
	d := profitMargin - model.BaselineProfitMargin
	return 1 - elasticity*d*(1+math.Abs(d)*convexity)
}

// AdjustQuantity applies a demand factor, clamping the result at zero.
func AdjustQuantity(quantity, adjustment float64) float64 {
	return math.Max(0, quantity*adjustment)
}
