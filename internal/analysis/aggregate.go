package analysis

import (
	"sort"

	"pricing-simulator/internal/model"
)

// AggregateProducts collapses transactions into one row per description.
//
// Descriptions are matched exactly (no trimming or case folding). Quantity is
// summed and UnitPrice is the unweighted mean of the transaction prices.
// Output is sorted by description so repeated runs are identical.
func AggregateProducts(records []model.TransactionRecord) []model.ProductAggregate {
	type acc struct {
		qty      float64
		priceSum float64
		n        int
	}
	byDesc := make(map[string]*acc)
	for _, r := range records {
		a, ok := byDesc[r.Description]
		if !ok {
			a = &acc{}
			byDesc[r.Description] = a
		}
		a.qty += r.Quantity
		a.priceSum += r.UnitPrice
		a.n++
	}

	out := make([]model.ProductAggregate, 0, len(byDesc))
	for desc, a := range byDesc {
		out = append(out, model.ProductAggregate{
			Description:  desc,
			Quantity:     a.qty,
			UnitPrice:    a.priceSum / float64(a.n),
			Transactions: a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Description < out[j].Description
	})
	return out
}
