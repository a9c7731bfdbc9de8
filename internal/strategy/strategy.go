package strategy

import "pricing-simulator/internal/model"

// Scenario computes one scenario row for an aggregated product.
// Implementations must not mutate the product and must keep the key.
type Scenario interface {
	Name() model.Scenario
	Apply(p model.ProductAggregate) model.ScenarioResult
}

// Simulate applies s to every product. The result has the same length,
// order and keys as products.
func Simulate(products []model.ProductAggregate, s Scenario) []model.ScenarioResult {
	out := make([]model.ScenarioResult, len(products))
	for i, p := range products {
		out[i] = s.Apply(p)
	}
	return out
}

// SimulateBaseline runs the Original scenario (margin 0.3, no demand reaction).
func SimulateBaseline(products []model.ProductAggregate) []model.ScenarioResult {
	return Simulate(products, Baseline{})
}

// SimulateStrategy runs the Simulado scenario.
//
// elasticity and profitMargin are expected in [0, 1]; they are not validated
// here. Callers outside the presenter should use SimulationParams.Validate or
// SimulationParams.Clamp first.
func SimulateStrategy(products []model.ProductAggregate, elasticity, profitMargin float64) []model.ScenarioResult {
	return Simulate(products, &MarginStrategy{Params: model.SimulationParams{
		ProfitMargin: profitMargin,
		Elasticity:   elasticity,
	}})
}
