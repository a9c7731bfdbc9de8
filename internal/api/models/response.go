package models

import "time"

// SimulateResponse represents the response from a what-if run
type SimulateResponse struct {
	Params     Params          `json:"params"`
	Allocation string          `json:"allocation"`
	Monthly    []MonthlyProfit `json:"monthly"`
	Totals     Totals          `json:"totals"`
	Chart      ChartInfo       `json:"chart"`
	Products   []ProductResult `json:"products,omitempty"`
}

// Params echoes the parameters actually used
type Params struct {
	ProfitMarginPct float64 `json:"profit_margin_pct"`
	Elasticity      float64 `json:"elasticity"`
}

// MonthlyProfit is one row of the monthly summary
type MonthlyProfit struct {
	Month           string  `json:"month"` // YYYY-MM
	Scenario        string  `json:"scenario"`
	EstimatedProfit float64 `json:"estimated_profit"`
}

// Totals contains per-scenario profit sums and their display strings
type Totals struct {
	Original         float64 `json:"original"`
	Simulated        float64 `json:"simulated"`
	Delta            float64 `json:"delta"`
	OriginalDisplay  string  `json:"original_display"`
	SimulatedDisplay string  `json:"simulated_display"`
	DeltaDisplay     string  `json:"delta_display"`
}

// ChartInfo describes a grouped bar chart of monthly profit
type ChartInfo struct {
	Title   string        `json:"title"`
	BarMode string        `json:"barmode"`
	Months  []string      `json:"months"`
	Series  []ChartSeries `json:"series"`
}

// ChartSeries is one scenario's bars
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ProductResult is one row of the combined scenario table
type ProductResult struct {
	Description      string  `json:"description"`
	Scenario         string  `json:"scenario"`
	Quantity         float64 `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	UnitCost         float64 `json:"unit_cost"`
	ListedPrice      float64 `json:"listed_price"`
	AdjustedQuantity float64 `json:"adjusted_quantity"`
	EstimatedProfit  float64 `json:"estimated_profit"`
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name   string `json:"name"`
	Params Params `json:"params"`
	Totals Totals `json:"totals"`
}

// RankResponse represents the response from ranking products
type RankResponse struct {
	Params   Params    `json:"params"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked product
type Ranking struct {
	Rank             int     `json:"rank"`
	Description      string  `json:"description"`
	BaselineQuantity float64 `json:"baseline_quantity"`
	AdjustedQuantity float64 `json:"adjusted_quantity"`
	BaselineProfit   float64 `json:"baseline_profit"`
	SimulatedProfit  float64 `json:"simulated_profit"`
	Delta            float64 `json:"delta"`
}

// ParameterInfo describes one simulation slider
type ParameterInfo struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Type        string  `json:"type"` // "float"
	Description string  `json:"description"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
	Default     float64 `json:"default"`
}

// DatasetInfo describes the loaded transaction file
type DatasetInfo struct {
	Path         string      `json:"path"`
	Hash         string      `json:"hash"`
	Rows         int         `json:"rows"`
	Transactions int         `json:"transactions"`
	Products     int         `json:"products"`
	Dropped      DroppedRows `json:"dropped"`
	DateLayout   string      `json:"date_layout,omitempty"`
	FirstMonth   string      `json:"first_month,omitempty"`
	LastMonth    string      `json:"last_month,omitempty"`
	LoadedAt     time.Time   `json:"loaded_at"`
}

// DroppedRows breaks down rows removed during cleaning
type DroppedRows struct {
	MissingFields int `json:"missing_fields"`
	NonNumeric    int `json:"non_numeric"`
	NonPositive   int `json:"non_positive"`
	Total         int `json:"total"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
