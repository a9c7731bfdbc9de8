package models

// SimulateRequest represents the request body for a what-if run.
// Omitted parameters fall back to the server's configured defaults.
type SimulateRequest struct {
	ProfitMarginPct *float64 `json:"profit_margin_pct" binding:"omitempty,min=0,max=100"`
	Elasticity      *float64 `json:"elasticity" binding:"omitempty,min=0,max=1"`
	Allocation      string   `json:"allocation,omitempty" binding:"omitempty,oneof=per_transaction quantity_share"`
	IncludeProducts bool     `json:"include_products,omitempty"` // default: false
}

// CompareRequest represents a request to compare several parameter settings
type CompareRequest struct {
	Variations []Variation `json:"variations" binding:"required,min=1,max=20,dive"`
	Allocation string      `json:"allocation,omitempty" binding:"omitempty,oneof=per_transaction quantity_share"`
}

// Variation defines one setting to compare
type Variation struct {
	Name            string   `json:"name" binding:"required"`
	ProfitMarginPct *float64 `json:"profit_margin_pct" binding:"omitempty,min=0,max=100"`
	Elasticity      *float64 `json:"elasticity" binding:"omitempty,min=0,max=1"`
}

// RankRequest represents a request to rank products by profit change
type RankRequest struct {
	ProfitMarginPct *float64 `form:"profit_margin_pct" binding:"omitempty,min=0,max=100"`
	Elasticity      *float64 `form:"elasticity" binding:"omitempty,min=0,max=1"`
	Limit           int      `form:"limit" binding:"omitempty,min=1"` // default: 10
}
