package simulation

import (
	"pricing-simulator/internal/analysis"
	"pricing-simulator/internal/model"
)

// ChartTitle is the heading shown above the monthly bar chart.
const ChartTitle = "Lucro Mensal Estimado por Cenário"

// ChartBarMode places each month's scenario bars side by side.
const ChartBarMode = "group"

// Series is one bar group colour: a scenario's profit per chart month.
type Series struct {
	Scenario model.Scenario
	Values   []float64
}

// Chart is the monthly summary pivoted for a grouped bar chart:
// x = month, one series per scenario.
type Chart struct {
	Title  string
	Months []model.Month
	Series []Series
}

var seriesOrder = []model.Scenario{model.ScenarioOriginal, model.ScenarioSimulated}

// BuildChart pivots a monthly summary. Months missing for a scenario are 0.
func BuildChart(monthly []model.MonthlyProfitSummary) Chart {
	months := analysis.Months(monthly)
	pos := make(map[model.Month]int, len(months))
	for i, m := range months {
		pos[m] = i
	}

	series := make([]Series, len(seriesOrder))
	byScenario := make(map[model.Scenario]int, len(seriesOrder))
	for i, s := range seriesOrder {
		series[i] = Series{Scenario: s, Values: make([]float64, len(months))}
		byScenario[s] = i
	}
	for _, row := range monthly {
		i, ok := byScenario[row.Scenario]
		if !ok {
			continue
		}
		series[i].Values[pos[row.Month]] += row.EstimatedProfit
	}
	return Chart{Title: ChartTitle, Months: months, Series: series}
}
