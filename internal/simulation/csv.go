package simulation

import (
	"encoding/csv"
	"os"
	"strconv"

	"pricing-simulator/internal/model"
)

func WriteScenarioCSV(path string, rows []model.ScenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"description",
		"quantity",
		"unit_price",
		"unit_cost",
		"listed_price",
		"adjusted_quantity",
		"estimated_profit",
		"scenario",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.Description,
			fmtFloat(r.Quantity),
			fmtFloat(r.UnitPrice),
			fmtFloat(r.UnitCost),
			fmtFloat(r.ListedPrice),
			fmtFloat(r.AdjustedQuantity),
			fmtFloat(r.EstimatedProfit),
			string(r.Scenario),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WriteMonthlyCSV(path string, rows []model.MonthlyProfitSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"month", "scenario", "estimated_profit"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{string(r.Month), string(r.Scenario), fmtFloat(r.EstimatedProfit)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
