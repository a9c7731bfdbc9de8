package data

import "strings"

// Required input columns. Other columns are ignored.
const (
	ColInvoiceNo   = "InvoiceNo"
	ColDescription = "Description"
	ColQuantity    = "Quantity"
	ColInvoiceDate = "InvoiceDate"
	ColUnitPrice   = "UnitPrice"
)

var requiredColumns = []string{ColInvoiceNo, ColDescription, ColQuantity, ColInvoiceDate, ColUnitPrice}

// missingTokens are cell values treated as absent, in addition to "".
// This is the set spreadsheet/dataframe tooling reads as NA by default.
var missingTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true,
	"-1.#IND": true, "-1.#QNAN": true, "-NaN": true, "-nan": true,
	"1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

func isMissing(v string) bool {
	return v == "" || missingTokens[v]
}

type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// cell returns the value of col in row, or "" when the row is short.
func (c columnIndex) cell(row []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
