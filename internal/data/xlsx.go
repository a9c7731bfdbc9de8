package data

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the first sheet as header + rows. Cells are read raw;
// numeric InvoiceDate cells are Excel serial dates and are converted to
// "2006-01-02 15:04:05" text so the common cleaning pass can parse them.
func readXLSX(raw []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, errors.Wrap(err, "open xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.Wrap(ErrMissingColumn, "workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}
	if len(all) == 0 {
		return nil, nil, errors.Wrap(ErrMissingColumn, "empty sheet")
	}

	header, rows := all[0], all[1:]
	dateCol, ok := indexHeader(header)[ColInvoiceDate]
	if !ok {
		return header, rows, nil
	}
	for _, row := range rows {
		if dateCol >= len(row) {
			continue
		}
		serial, err := strconv.ParseFloat(row[dateCol], 64)
		if err != nil {
			continue
		}
		ts, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			continue
		}
		row[dateCol] = ts.Format("2006-01-02 15:04:05")
	}
	return header, rows, nil
}
