package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/api/models"
	"pricing-simulator/internal/config"
	"pricing-simulator/internal/model"
	"pricing-simulator/internal/simulation"
)

// SimulationHandler handles what-if runs against the loaded dataset
type SimulationHandler struct {
	source   DatasetSource
	defaults config.SimulationConfig
	log      *logrus.Entry
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(source DatasetSource, defaults config.SimulationConfig) *SimulationHandler {
	return &SimulationHandler{
		source:   source,
		defaults: defaults,
		log:      logrus.WithField("handler", "simulation"),
	}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ds, ok := h.source.load(c)
	if !ok {
		return
	}

	params := resolveParams(h.defaults, req.ProfitMarginPct, req.Elasticity)
	engine := simulation.New(h.allocation(req.Allocation))
	result, err := engine.Run(ds.Products, ds.Transactions, params)
	if err != nil {
		simulationError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"params":     params.String(),
		"allocation": result.Allocation,
		"original":   result.Totals.Original,
		"simulated":  result.Totals.Simulated,
	}).Debug("simulation complete")

	c.JSON(http.StatusOK, buildSimulateResponse(result, req.IncludeProducts))
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulationHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ds, ok := h.source.load(c)
	if !ok {
		return
	}

	engine := simulation.New(h.allocation(req.Allocation))
	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		params := resolveParams(h.defaults, variation.ProfitMarginPct, variation.Elasticity)
		result, err := engine.Run(ds.Products, ds.Transactions, params)
		if err != nil {
			simulationError(c, err)
			return
		}
		comparison = append(comparison, models.ComparisonResult{
			Name:   variation.Name,
			Params: buildParams(params),
			Totals: buildTotals(result.Totals),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// allocation picks the request's mode over the configured one.
// The request value has already passed binding validation.
func (h *SimulationHandler) allocation(requested string) model.Allocation {
	if requested != "" {
		return model.Allocation(requested)
	}
	return h.defaults.AllocationMode()
}

// resolveParams fills omitted fields from the configured defaults.
func resolveParams(defaults config.SimulationConfig, marginPct, elasticity *float64) model.SimulationParams {
	pct := defaults.ProfitMarginPct
	if marginPct != nil {
		pct = *marginPct
	}
	e := defaults.Elasticity
	if elasticity != nil {
		e = *elasticity
	}
	return model.ParamsFromPercent(pct, e)
}

func simulationError(c *gin.Context, err error) {
	logrus.WithError(err).Error("simulation failed")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "SIMULATION_ERROR",
			Message: err.Error(),
		},
	})
}

func buildSimulateResponse(result *simulation.Result, includeProducts bool) models.SimulateResponse {
	resp := models.SimulateResponse{
		Params:     buildParams(result.Params),
		Allocation: string(result.Allocation),
		Monthly:    make([]models.MonthlyProfit, len(result.Monthly)),
		Totals:     buildTotals(result.Totals),
		Chart:      buildChart(simulation.BuildChart(result.Monthly)),
	}
	for i, m := range result.Monthly {
		resp.Monthly[i] = models.MonthlyProfit{
			Month:           string(m.Month),
			Scenario:        string(m.Scenario),
			EstimatedProfit: m.EstimatedProfit,
		}
	}
	if includeProducts {
		resp.Products = make([]models.ProductResult, len(result.Combined))
		for i, r := range result.Combined {
			resp.Products[i] = models.ProductResult{
				Description:      r.Description,
				Scenario:         string(r.Scenario),
				Quantity:         r.Quantity,
				UnitPrice:        r.UnitPrice,
				UnitCost:         r.UnitCost,
				ListedPrice:      r.ListedPrice,
				AdjustedQuantity: r.AdjustedQuantity,
				EstimatedProfit:  r.EstimatedProfit,
			}
		}
	}
	return resp
}

func buildParams(p model.SimulationParams) models.Params {
	return models.Params{
		ProfitMarginPct: p.ProfitMarginPct(),
		Elasticity:      p.Elasticity,
	}
}

func buildTotals(t simulation.Totals) models.Totals {
	return models.Totals{
		Original:         t.Original,
		Simulated:        t.Simulated,
		Delta:            t.Delta(),
		OriginalDisplay:  simulation.FormatCurrency(t.Original),
		SimulatedDisplay: simulation.FormatCurrency(t.Simulated),
		DeltaDisplay:     simulation.FormatCurrency(t.Delta()),
	}
}

func buildChart(chart simulation.Chart) models.ChartInfo {
	info := models.ChartInfo{
		Title:   chart.Title,
		BarMode: simulation.ChartBarMode,
		Months:  make([]string, len(chart.Months)),
		Series:  make([]models.ChartSeries, len(chart.Series)),
	}
	for i, m := range chart.Months {
		info.Months[i] = string(m)
	}
	for i, s := range chart.Series {
		info.Series[i] = models.ChartSeries{Name: string(s.Scenario), Values: s.Values}
	}
	return info
}
