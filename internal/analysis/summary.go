package analysis

import (
	"sort"

	"github.com/pkg/errors"

	"pricing-simulator/internal/model"
)

type monthScenario struct {
	month    model.Month
	scenario model.Scenario
}

// SummarizeMonthly joins scenario rows back to the dated transactions by
// description and sums estimated profit per (month, scenario).
//
// With AllocationPerTransaction every transaction of a product contributes the
// product's full aggregate profit, so a month's sum counts a product once per
// transaction it had in that month. AllocationQuantityShare instead spreads
// each product's profit by the fraction of its quantity sold in the month.
//
// Transactions whose description has no scenario row are dropped (inner join).
// Rows are ordered by month, then scenario label.
func SummarizeMonthly(results []model.ScenarioResult, records []model.TransactionRecord, alloc model.Allocation) ([]model.MonthlyProfitSummary, error) {
	weights, err := monthWeights(records, alloc)
	if err != nil {
		return nil, err
	}

	sums := make(map[monthScenario]float64)
	for _, r := range results {
		for month, w := range weights[r.Description] {
			sums[monthScenario{month: month, scenario: r.Scenario}] += r.EstimatedProfit * w
		}
	}

	out := make([]model.MonthlyProfitSummary, 0, len(sums))
	for k, v := range sums {
		out = append(out, model.MonthlyProfitSummary{
			Month:           k.month,
			Scenario:        k.scenario,
			EstimatedProfit: v,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Scenario < out[j].Scenario
	})
	return out, nil
}

// monthWeights returns, per description and month, the multiplier applied to
// the product's aggregate profit.
func monthWeights(records []model.TransactionRecord, alloc model.Allocation) (map[string]map[model.Month]float64, error) {
	out := make(map[string]map[model.Month]float64)
	add := func(desc string, m model.Month, v float64) {
		byMonth, ok := out[desc]
		if !ok {
			byMonth = make(map[model.Month]float64)
			out[desc] = byMonth
		}
		byMonth[m] += v
	}

	switch alloc {
	case model.AllocationPerTransaction:
		for _, r := range records {
			add(r.Description, r.Month(), 1)
		}
	case model.AllocationQuantityShare:
		totals := make(map[string]float64)
		for _, r := range records {
			add(r.Description, r.Month(), r.Quantity)
			totals[r.Description] += r.Quantity
		}
		for desc, byMonth := range out {
			total := totals[desc]
			for m, q := range byMonth {
				if total > 0 {
					byMonth[m] = q / total
				} else {
					byMonth[m] = 0
				}
			}
		}
	default:
		return nil, errors.Errorf("unsupported allocation %q", alloc)
	}
	return out, nil
}

// Months returns the distinct months of a summary in ascending order.
func Months(summary []model.MonthlyProfitSummary) []model.Month {
	seen := make(map[model.Month]bool)
	var out []model.Month
	for _, s := range summary {
		if !seen[s.Month] {
			seen[s.Month] = true
			out = append(out, s.Month)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TotalProfit sums estimated profit of the rows labelled with scenario.
func TotalProfit(results []model.ScenarioResult, scenario model.Scenario) float64 {
	total := 0.0
	for _, r := range results {
		if r.Scenario == scenario {
			total += r.EstimatedProfit
		}
	}
	return total
}
