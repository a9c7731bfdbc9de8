package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/config"
	"pricing-simulator/internal/data"
	"pricing-simulator/internal/model"
	"pricing-simulator/internal/simulation"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --data online_retail.csv --margin 45 --elasticity 0.3 --out results/monthly.csv")
	fmt.Println("  cli rank --data online_retail.csv --margin 45 --elasticity 0.3 -n 20")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes the monthly profit summary, and optionally the per-product scenario table")
	fmt.Println("  - rank lists the products whose profit moves the most under the simulated margin")
	fmt.Println("  - out-of-range --margin/--elasticity values are clamped to 0..100 and 0..1")
}

// runFlags are shared by every subcommand that runs a simulation.
type runFlags struct {
	fs         *flag.FlagSet
	cfgPath    *string
	dataPath   *string
	margin     *float64
	elasticity *float64
	allocation *string
}

func newRunFlags(name string) *runFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return &runFlags{
		fs:         fs,
		cfgPath:    fs.String("config", "", "Path to YAML config (optional)"),
		dataPath:   fs.String("data", "", "Path to transactions CSV/XLSX (overrides config)"),
		margin:     fs.Float64("margin", model.DefaultProfitMarginPct, "Profit margin in percent (0-100)"),
		elasticity: fs.Float64("elasticity", model.DefaultElasticity, "Customer dissatisfaction / elasticity (0-1)"),
		allocation: fs.String("allocation", "", "Monthly allocation: per_transaction or quantity_share"),
	}
}

// setup loads config, applies explicitly set flags over it and loads the dataset.
func (f *runFlags) setup() (*config.Config, *data.Dataset, model.SimulationParams) {
	cfg, err := config.Load(*f.cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := config.ConfigureLogger(cfg.Logging); err != nil {
		logrus.Fatalf("configure logging: %v", err)
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "data":
			cfg.Dataset.Path = *f.dataPath
		case "margin":
			cfg.Simulation.ProfitMarginPct = *f.margin
		case "elasticity":
			cfg.Simulation.Elasticity = *f.elasticity
		case "allocation":
			cfg.Simulation.Allocation = *f.allocation
		}
	})
	if _, err := model.ParseAllocation(cfg.Simulation.Allocation); err != nil {
		logrus.Fatalf("%v", err)
	}

	requested := cfg.Simulation.Params()
	params := requested.Clamp()
	if params != requested {
		logrus.Warnf("parameters %s out of range, clamped to %s", requested, params)
	}

	ds, err := data.NewLoader(cfg.Dataset.LoaderOptions()).LoadDataset(cfg.Dataset.Path)
	if err != nil {
		logrus.Fatalf("load dataset: %v", err)
	}
	return cfg, ds, params
}

func cmdSimulate(args []string) {
	f := newRunFlags("simulate")
	outPath := f.fs.String("out", "results/monthly.csv", "Monthly summary CSV path")
	scenariosPath := f.fs.String("scenarios", "", "Optional: per-product scenario CSV path")
	_ = f.fs.Parse(args)

	cfg, ds, params := f.setup()

	res, err := simulation.New(cfg.Simulation.AllocationMode()).Run(ds.Products, ds.Transactions, params)
	if err != nil {
		logrus.Fatalf("simulate: %v", err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		logrus.Fatalf("create output dir: %v", err)
	}
	if err := simulation.WriteMonthlyCSV(*outPath, res.Monthly); err != nil {
		logrus.Fatalf("write monthly summary: %v", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(res.Monthly), *outPath)

	if *scenariosPath != "" {
		if err := os.MkdirAll(filepath.Dir(*scenariosPath), 0o755); err != nil {
			logrus.Fatalf("create output dir: %v", err)
		}
		if err := simulation.WriteScenarioCSV(*scenariosPath, res.Combined); err != nil {
			logrus.Fatalf("write scenarios: %v", err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Combined), *scenariosPath)
	}

	fmt.Printf("Parameters: %s (allocation=%s)\n", params, res.Allocation)
	fmt.Printf("Products=%d Transactions=%d Dropped=%d\n", len(ds.Products), len(ds.Transactions), ds.Stats.Dropped())
	fmt.Printf("%-10s %s\n", model.ScenarioOriginal, simulation.FormatCurrency(res.Totals.Original))
	fmt.Printf("%-10s %s\n", model.ScenarioSimulated, simulation.FormatCurrency(res.Totals.Simulated))
	fmt.Printf("%-10s %s\n", "Delta", simulation.FormatCurrency(res.Totals.Delta()))
}

func cmdRank(args []string) {
	f := newRunFlags("rank")
	n := f.fs.Int("n", 10, "Number of products to show (0=all)")
	_ = f.fs.Parse(args)

	cfg, ds, params := f.setup()

	res, err := simulation.New(cfg.Simulation.AllocationMode()).Run(ds.Products, ds.Transactions, params)
	if err != nil {
		logrus.Fatalf("simulate: %v", err)
	}

	ranked := res.Ranking()
	if *n > 0 && *n < len(ranked) {
		ranked = ranked[:*n]
	}

	fmt.Printf("%-4s %-40s %-10s %-10s %-12s %-12s %-12s\n", "rank", "description", "qty", "adj qty", "original", "simulated", "delta")
	for i, r := range ranked {
		fmt.Printf(
			"%-4d %-40s %-10.0f %-10.2f %-12.2f %-12.2f %-12.2f\n",
			i+1,
			truncate(r.Description, 40),
			r.BaselineQuantity,
			r.AdjustedQuantity,
			r.BaselineProfit,
			r.SimulatedProfit,
			r.Delta,
		)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
