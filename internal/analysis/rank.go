package analysis

import (
	"sort"

	"pricing-simulator/internal/model"
)

// ProductDelta compares one product across the two scenarios.
type ProductDelta struct {
	Description string

	BaselineQuantity float64
	AdjustedQuantity float64

	BaselineProfit  float64
	SimulatedProfit float64
	Delta           float64 // SimulatedProfit - BaselineProfit
}

// RankByProfitDelta pairs baseline and simulated rows by description and
// sorts descending by Delta (ties by description). Products missing from
// either side are skipped.
func RankByProfitDelta(baseline, simulated []model.ScenarioResult) []ProductDelta {
	sim := make(map[string]model.ScenarioResult, len(simulated))
	for _, r := range simulated {
		sim[r.Description] = r
	}

	out := make([]ProductDelta, 0, len(baseline))
	for _, b := range baseline {
		s, ok := sim[b.Description]
		if !ok {
			continue
		}
		out = append(out, ProductDelta{
			Description:      b.Description,
			BaselineQuantity: b.AdjustedQuantity,
			AdjustedQuantity: s.AdjustedQuantity,
			BaselineProfit:   b.EstimatedProfit,
			SimulatedProfit:  s.EstimatedProfit,
			Delta:            s.EstimatedProfit - b.EstimatedProfit,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Delta != out[j].Delta {
			return out[i].Delta > out[j].Delta
		}
		return out[i].Description < out[j].Description
	})
	return out
}
