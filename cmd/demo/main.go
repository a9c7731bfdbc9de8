package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/analysis"
	"pricing-simulator/internal/model"
	"pricing-simulator/internal/simulation"
	"pricing-simulator/internal/strategy"
)

// Demo:
// - Build a tiny in-memory transaction set
// - Sweep the profit margin at a fixed elasticity
// - Print how demand and estimated profit respond, to show how the stages fit together
func main() {
	elasticity := flag.Float64("elasticity", 0.2, "Elasticity used for the sweep (0-1)")
	step := flag.Float64("step", 10, "Margin sweep step in percent")
	flag.Parse()
	if *step <= 0 {
		*step = 10
	}

	at := func(m time.Month, d int) time.Time { return time.Date(2011, m, d, 10, 0, 0, 0, time.UTC) }
	records := []model.TransactionRecord{
		{InvoiceNo: "536365", Description: "Widget", Quantity: 40, UnitPrice: 10, InvoiceDate: at(time.March, 1)},
		{InvoiceNo: "536366", Description: "Widget", Quantity: 60, UnitPrice: 10, InvoiceDate: at(time.April, 2)},
		{InvoiceNo: "536367", Description: "Gadget", Quantity: 10, UnitPrice: 2, InvoiceDate: at(time.March, 5)},
	}
	products := analysis.AggregateProducts(records)

	fmt.Printf("%d products from %d transactions\n\n", len(products), len(records))
	fmt.Printf("%-8s %-10s %-14s %-14s %-14s\n", "margin%", "demand", "original", "simulated", "delta")

	engine := simulation.New(model.AllocationPerTransaction)
	for pct := model.MinProfitMarginPct; pct <= model.MaxProfitMarginPct; pct += *step {
		params := model.ParamsFromPercent(pct, *elasticity).Clamp()
		res, err := engine.Run(products, records, params)
		if err != nil {
			logrus.Fatalf("simulate: %v", err)
		}
		fmt.Printf("%-8.0f %-10.3f %-14s %-14s %-14s\n",
			pct,
			strategy.DemandAdjustment(params.Elasticity, params.ProfitMargin),
			simulation.FormatCurrency(res.Totals.Original),
			simulation.FormatCurrency(res.Totals.Simulated),
			simulation.FormatCurrency(res.Totals.Delta()),
		)
	}

	res, err := engine.Run(products, records, model.ParamsFromPercent(50, *elasticity).Clamp())
	if err != nil {
		logrus.Fatalf("simulate: %v", err)
	}
	fmt.Println("\nMonthly summary at 50%:")
	for _, m := range res.Monthly {
		fmt.Printf("  %s %-9s %s\n", m.Month, m.Scenario, simulation.FormatCurrency(m.EstimatedProfit))
	}
}
