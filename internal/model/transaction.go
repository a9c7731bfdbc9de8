package model

import "time"

// TransactionRecord is one cleaned sale line from the retail log.
// Records only exist after loading has dropped invalid rows, so
// Quantity and UnitPrice are always > 0 and InvoiceDate is set.
type TransactionRecord struct {
	InvoiceNo   string
	Description string // product key, matched exactly

	Quantity  float64
	UnitPrice float64

	InvoiceDate time.Time
}

// Month returns the calendar month the invoice belongs to.
func (t TransactionRecord) Month() Month {
	return MonthOf(t.InvoiceDate)
}

// Month is a calendar month key formatted as "YYYY-MM".
// The format sorts lexically in chronological order.
type Month string

const monthLayout = "2006-01"

func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

// Time returns the first instant of the month in UTC.
func (m Month) Time() (time.Time, error) {
	return time.Parse(monthLayout, string(m))
}
