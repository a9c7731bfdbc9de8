package strategy

import "pricing-simulator/internal/model"

// Baseline is the fixed reference scenario: 30% margin, demand unchanged.
type Baseline struct{}

func (Baseline) Name() model.Scenario { return model.ScenarioOriginal }

func (Baseline) Apply(p model.ProductAggregate) model.ScenarioResult {
	unitCost := p.UnitPrice * (1 - model.BaselineProfitMargin)
	listed := p.UnitPrice
	qty := p.Quantity
	return model.ScenarioResult{
		Description:      p.Description,
		Quantity:         p.Quantity,
		UnitPrice:        p.UnitPrice,
		UnitCost:         unitCost,
		ListedPrice:      listed,
		AdjustedQuantity: qty,
		EstimatedProfit:  (listed - unitCost) * qty,
		Scenario:         model.ScenarioOriginal,
	}
}
