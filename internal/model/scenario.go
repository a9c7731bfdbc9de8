package model

// Scenario labels a variant of the computed cost/quantity/profit table.
// Keep these values stable; they are used as chart series names and in CSV output.
type Scenario string

const (
	ScenarioOriginal  Scenario = "Original"
	ScenarioSimulated Scenario = "Simulado"
)

// ScenarioResult is one product row of one scenario.
// Rows are created once by a scenario and never mutated afterwards.
type ScenarioResult struct {
	Description string

	// Inputs carried over from the aggregate.
	Quantity  float64
	UnitPrice float64

	UnitCost         float64
	ListedPrice      float64 // always equal to UnitPrice
	AdjustedQuantity float64
	EstimatedProfit  float64

	Scenario Scenario
}

// MonthlyProfitSummary is the summed estimated profit for one (month, scenario) pair.
type MonthlyProfitSummary struct {
	Month           Month
	Scenario        Scenario
	EstimatedProfit float64
}
