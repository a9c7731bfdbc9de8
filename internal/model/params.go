package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// BaselineProfitMargin is the reference margin of the Original scenario.
// Demand reacts to deviations from this value.
const BaselineProfitMargin = 0.3

// Parameter ranges as exposed to the presenter.
// The margin is entered as a percentage and divided by 100 before use.
const (
	MinProfitMarginPct     = 0.0
	MaxProfitMarginPct     = 100.0
	ProfitMarginStepPct    = 5.0
	DefaultProfitMarginPct = 30.0

	MinElasticity     = 0.0
	MaxElasticity     = 1.0
	ElasticityStep    = 0.01
	DefaultElasticity = 0.0
)

var ErrInvalidParams = errors.New("invalid simulation parameters")

// SimulationParams are the two scalar inputs of a what-if run.
// Units:
// - ProfitMargin: fraction 0..1 (not a percentage)
// - Elasticity: 0..1
type SimulationParams struct {
	ProfitMargin float64
	Elasticity   float64
}

// ParamsFromPercent converts presenter inputs (margin in %) to SimulationParams.
func ParamsFromPercent(profitMarginPct, elasticity float64) SimulationParams {
	return SimulationParams{
		ProfitMargin: profitMarginPct / 100,
		Elasticity:   elasticity,
	}
}

// BaselineParams returns the parameters that reproduce the Original scenario.
func BaselineParams() SimulationParams {
	return SimulationParams{ProfitMargin: BaselineProfitMargin, Elasticity: 0}
}

// ProfitMarginPct returns the margin expressed as a percentage.
func (p SimulationParams) ProfitMarginPct() float64 {
	return p.ProfitMargin * 100
}

func (p SimulationParams) Validate() error {
	if p.ProfitMargin < 0 || p.ProfitMargin > 1 {
		return errors.Wrapf(ErrInvalidParams, "profit margin must be in [0, 1], got %g", p.ProfitMargin)
	}
	if p.Elasticity < MinElasticity || p.Elasticity > MaxElasticity {
		return errors.Wrapf(ErrInvalidParams, "elasticity must be in [%g, %g], got %g", MinElasticity, MaxElasticity, p.Elasticity)
	}
	return nil
}

// Clamp forces both parameters into their supported ranges.
// NaN values fall back to the baseline.
func (p SimulationParams) Clamp() SimulationParams {
	return SimulationParams{
		ProfitMargin: clamp(p.ProfitMargin, 0, 1, BaselineProfitMargin),
		Elasticity:   clamp(p.Elasticity, MinElasticity, MaxElasticity, DefaultElasticity),
	}
}

func (p SimulationParams) String() string {
	return fmt.Sprintf("margin=%.2f elasticity=%.2f", p.ProfitMargin, p.Elasticity)
}

func clamp(x, lo, hi, nan float64) float64 {
	if x != x {
		return nan
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Allocation selects how the monthly summary spreads a product's
// aggregate profit over the months it sold in.
type Allocation string

const (
	// AllocationPerTransaction adds the product's full estimated profit once
	// per transaction in the month. Monthly sums overcount the product total
	// by its transaction count.
	AllocationPerTransaction Allocation = "per_transaction"

	// AllocationQuantityShare distributes the product's estimated profit by
	// the share of its total quantity sold in each month. Monthly sums add
	// back up to the scenario total.
	AllocationQuantityShare Allocation = "quantity_share"
)

const DefaultAllocation = AllocationPerTransaction

// ParseAllocation maps a config/request string to an Allocation.
// Empty selects DefaultAllocation.
func ParseAllocation(s string) (Allocation, error) {
	switch Allocation(s) {
	case "":
		return DefaultAllocation, nil
	case AllocationPerTransaction, AllocationQuantityShare:
		return Allocation(s), nil
	default:
		return "", errors.Errorf("unknown allocation %q (want %q or %q)", s, AllocationPerTransaction, AllocationQuantityShare)
	}
}
