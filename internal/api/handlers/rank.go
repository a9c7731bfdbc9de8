package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing-simulator/internal/api/models"
	"pricing-simulator/internal/config"
	"pricing-simulator/internal/simulation"
)

const defaultRankLimit = 10

// RankHandler handles product ranking requests
type RankHandler struct {
	source   DatasetSource
	defaults config.SimulationConfig
}

// NewRankHandler creates a new rank handler
func NewRankHandler(source DatasetSource, defaults config.SimulationConfig) *RankHandler {
	return &RankHandler{source: source, defaults: defaults}
}

// RankProducts handles GET /api/v1/rank
func (h *RankHandler) RankProducts(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultRankLimit
	}

	ds, ok := h.source.load(c)
	if !ok {
		return
	}

	params := resolveParams(h.defaults, req.ProfitMarginPct, req.Elasticity)
	result, err := simulation.New(h.defaults.AllocationMode()).Run(ds.Products, ds.Transactions, params)
	if err != nil {
		simulationError(c, err)
		return
	}

	deltas := result.Ranking()
	if len(deltas) > limit {
		deltas = deltas[:limit]
	}
	rankings := make([]models.Ranking, len(deltas))
	for i, d := range deltas {
		rankings[i] = models.Ranking{
			Rank:             i + 1,
			Description:      d.Description,
			BaselineQuantity: d.BaselineQuantity,
			AdjustedQuantity: d.AdjustedQuantity,
			BaselineProfit:   d.BaselineProfit,
			SimulatedProfit:  d.SimulatedProfit,
			Delta:            d.Delta,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{
		Params:   buildParams(params),
		Rankings: rankings,
	})
}
