package model

// ProductAggregate collapses every transaction of one product description.
//
// UnitPrice is the plain arithmetic mean of the transaction unit prices,
// not weighted by quantity.
type ProductAggregate struct {
	Description string

	Quantity  float64 // total quantity across all transactions
	UnitPrice float64 // mean unit price

	Transactions int
}
