package simulation

import (
	"pricing-simulator/internal/analysis"
	"pricing-simulator/internal/model"
)

// Result is everything one what-if run produces.
type Result struct {
	Params     model.SimulationParams
	Allocation model.Allocation

	Baseline  []model.ScenarioResult
	Simulated []model.ScenarioResult
	Combined  []model.ScenarioResult // Baseline followed by Simulated

	Monthly []model.MonthlyProfitSummary
	Totals  Totals
}

// Totals are per-scenario sums over the combined product table, independent
// of how the monthly summary allocates profit.
type Totals struct {
	Original  float64
	Simulated float64
}

func (t Totals) Delta() float64 { return t.Simulated - t.Original }

// Ranking returns products ordered by simulated minus baseline profit.
func (r *Result) Ranking() []analysis.ProductDelta {
	return analysis.RankByProfitDelta(r.Baseline, r.Simulated)
}
