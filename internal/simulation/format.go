package simulation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount the way the totals panel shows it,
// e.g. "R$ 1,234.56".
func FormatCurrency(v float64) string {
	return currencyPrinter.Sprintf("R$ %.2f", v)
}
