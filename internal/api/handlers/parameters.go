package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricing-simulator/internal/api/models"
	"pricing-simulator/internal/config"
	"pricing-simulator/internal/model"
)

// ParameterHandler describes the simulation inputs a client should offer
type ParameterHandler struct {
	defaults config.SimulationConfig
}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler(defaults config.SimulationConfig) *ParameterHandler {
	return &ParameterHandler{defaults: defaults}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	parameters := []models.ParameterInfo{
		{
			Name:        "profit_margin_pct",
			Label:       "Margem de Lucro (%)",
			Type:        "float",
			Description: "Target profit margin as a percentage of the listed price.",
			Min:         model.MinProfitMarginPct,
			Max:         model.MaxProfitMarginPct,
			Step:        model.ProfitMarginStepPct,
			Default:     h.defaults.ProfitMarginPct,
		},
		{
			Name:        "elasticity",
			Label:       "Insatisfação do Cliente (Elasticidade)",
			Type:        "float",
			Description: "How strongly demand reacts to moving the margin away from 30%.",
			Min:         model.MinElasticity,
			Max:         model.MaxElasticity,
			Step:        model.ElasticityStep,
			Default:     h.defaults.Elasticity,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"parameters": parameters,
		"allocation": h.defaults.AllocationMode(),
		"allocations": []model.Allocation{
			model.AllocationPerTransaction,
			model.AllocationQuantityShare,
		},
	})
}
