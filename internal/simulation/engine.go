package simulation

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/analysis"
	"pricing-simulator/internal/metrics"
	"pricing-simulator/internal/model"
	"pricing-simulator/internal/strategy"
)

// Engine composes the scenario and summary stages over an already loaded
// and aggregated dataset. Only these stages rerun when parameters change.
type Engine struct {
	allocation model.Allocation
	log        *logrus.Entry
}

func New(allocation model.Allocation) *Engine {
	if allocation == "" {
		allocation = model.DefaultAllocation
	}
	return &Engine{
		allocation: allocation,
		log:        logrus.WithField("component", "engine"),
	}
}

func (e *Engine) Allocation() model.Allocation { return e.allocation }

// Run computes the baseline and simulated scenarios for products, and the
// monthly profit summary against the dated transactions.
//
// params are used as given; validate or clamp them beforehand.
func (e *Engine) Run(products []model.ProductAggregate, records []model.TransactionRecord, params model.SimulationParams) (*Result, error) {
	baseline := strategy.SimulateBaseline(products)
	simulated := strategy.SimulateStrategy(products, params.Elasticity, params.ProfitMargin)

	combined := make([]model.ScenarioResult, 0, len(baseline)+len(simulated))
	combined = append(combined, baseline...)
	combined = append(combined, simulated...)

	monthly, err := analysis.SummarizeMonthly(combined, records, e.allocation)
	if err != nil {
		return nil, errors.Wrap(err, "summarize monthly profit")
	}

	res := &Result{
		Params:     params,
		Allocation: e.allocation,
		Baseline:   baseline,
		Simulated:  simulated,
		Combined:   combined,
		Monthly:    monthly,
		Totals: Totals{
			Original:  analysis.TotalProfit(combined, model.ScenarioOriginal),
			Simulated: analysis.TotalProfit(combined, model.ScenarioSimulated),
		},
	}

	metrics.SimulationRuns.WithLabelValues(string(e.allocation)).Inc()
	e.log.WithFields(logrus.Fields{
		"params":     params.String(),
		"products":   len(products),
		"months":     len(analysis.Months(monthly)),
		"original":   res.Totals.Original,
		"simulated":  res.Totals.Simulated,
		"allocation": e.allocation,
	}).Debug("simulation run")
	return res, nil
}
