package data

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"pricing-simulator/internal/analysis"
	"pricing-simulator/internal/metrics"
	"pricing-simulator/internal/model"
)

var (
	ErrMissingColumn     = errors.New("required column missing")
	ErrInvalidDate       = errors.New("invalid invoice date")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// DefaultDateLayouts are tried in order against the first surviving row.
// The first layout that parses it is then used for the whole file.
var DefaultDateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/06 15:04",
	"1/2/06 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
}

// LoaderOptions controls how a transaction file is decoded.
type LoaderOptions struct {
	Encoding    string   // CSV text encoding, default iso-8859-1
	Delimiter   string   // CSV field separator, default ","
	DateLayouts []string // Go time layouts, default DefaultDateLayouts
}

// Loader reads a transaction log and produces cleaned records.
type Loader struct {
	opts LoaderOptions
	log  *logrus.Entry
}

func NewLoader(opts LoaderOptions) *Loader {
	if opts.Encoding == "" {
		opts.Encoding = DefaultEncoding
	}
	if opts.Delimiter == "" {
		opts.Delimiter = ","
	}
	if len(opts.DateLayouts) == 0 {
		opts.DateLayouts = DefaultDateLayouts
	}
	return &Loader{
		opts: opts,
		log:  logrus.WithField("component", "loader"),
	}
}

// LoadStats counts what happened to the input rows during cleaning.
type LoadStats struct {
	Rows          int
	Kept          int
	MissingFields int
	NonNumeric    int
	NonPositive   int
	DateLayout    string
}

func (s LoadStats) Dropped() int {
	return s.MissingFields + s.NonNumeric + s.NonPositive
}

// Dataset is the cleaned, aggregated content of one input file.
// It is shared between requests and must be treated as read-only.
type Dataset struct {
	Path string
	Hash string // sha256 of the raw file bytes

	Transactions []model.TransactionRecord
	Products     []model.ProductAggregate
	Stats        LoadStats

	Size     int64
	ModTime  time.Time
	LoadedAt time.Time
}

// Months returns the first and last calendar month with transactions.
func (d *Dataset) Months() (first, last model.Month) {
	for i, t := range d.Transactions {
		m := t.Month()
		if i == 0 || m < first {
			first = m
		}
		if i == 0 || m > last {
			last = m
		}
	}
	return first, last
}

// LoadDataset reads path, cleans it and aggregates products.
// A date that cannot be parsed fails the whole load.
func (l *Loader) LoadDataset(path string) (*Dataset, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat dataset")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read dataset")
	}

	records, stats, err := l.LoadBytes(formatOf(path), raw)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	sum := sha256.Sum256(raw)
	ds := &Dataset{
		Path:         path,
		Hash:         hex.EncodeToString(sum[:]),
		Transactions: records,
		Products:     analysis.AggregateProducts(records),
		Stats:        stats,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		LoadedAt:     time.Now(),
	}

	metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	l.log.WithFields(logrus.Fields{
		"path":        path,
		"rows":        stats.Rows,
		"kept":        stats.Kept,
		"dropped":     stats.Dropped(),
		"products":    len(ds.Products),
		"date_layout": stats.DateLayout,
		"duration":    time.Since(start),
	}).Info("dataset loaded")
	return ds, nil
}

// LoadBytes parses raw file content of the given format ("csv", "tsv" or "xlsx").
func (l *Loader) LoadBytes(format string, raw []byte) ([]model.TransactionRecord, LoadStats, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	switch format {
	case "csv":
		header, rows, err = l.readCSV(bytes.NewReader(raw), l.opts.Delimiter)
	case "tsv":
		header, rows, err = l.readCSV(bytes.NewReader(raw), "\t")
	case "xlsx":
		header, rows, err = readXLSX(raw)
	default:
		err = errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if err != nil {
		return nil, LoadStats{}, err
	}
	return Clean(header, rows, l.opts.DateLayouts)
}

func (l *Loader) readCSV(r io.Reader, delimiter string) ([]string, [][]string, error) {
	dec, err := decodingReader(r, l.opts.Encoding)
	if err != nil {
		return nil, nil, err
	}
	cr := csv.NewReader(dec)
	comma := []rune(delimiter)
	if len(comma) != 1 {
		return nil, nil, errors.Errorf("delimiter must be a single character, got %q", delimiter)
	}
	cr.Comma = comma[0]
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errors.Wrap(ErrMissingColumn, "empty file")
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "read csv header")
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "read csv")
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".tsv":
		return "tsv"
	case ".csv", ".txt", "":
		return "csv"
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
}

type pendingRecord struct {
	rowNum int
	rec    model.TransactionRecord
	date   string
}

// Clean turns raw rows into TransactionRecords.
//
// Rows missing any required field, with a non-numeric quantity or price, or
// with quantity/price <= 0 are dropped silently. Dates are parsed last, only
// for surviving rows, and any unparseable date fails the whole call.
func Clean(header []string, rows [][]string, layouts []string) ([]model.TransactionRecord, LoadStats, error) {
	idx := indexHeader(header)
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, LoadStats{}, errors.Wrapf(ErrMissingColumn, "%q", col)
		}
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}

	stats := LoadStats{Rows: len(rows)}
	pending := make([]pendingRecord, 0, len(rows))
	for i, row := range rows {
		var missing bool
		for _, col := range requiredColumns {
			if isMissing(idx.cell(row, col)) {
				missing = true
				break
			}
		}
		if missing {
			stats.MissingFields++
			continue
		}

		qty, okQ := parseNumber(idx.cell(row, ColQuantity))
		price, okP := parseNumber(idx.cell(row, ColUnitPrice))
		if !okQ || !okP {
			stats.NonNumeric++
			continue
		}
		if qty <= 0 || price <= 0 {
			stats.NonPositive++
			continue
		}

		pending = append(pending, pendingRecord{
			// +2: 1-based and the header line
			rowNum: i + 2,
			rec: model.TransactionRecord{
				InvoiceNo:   idx.cell(row, ColInvoiceNo),
				Description: idx.cell(row, ColDescription),
				Quantity:    qty,
				UnitPrice:   price,
			},
			date: strings.TrimSpace(idx.cell(row, ColInvoiceDate)),
		})
	}

	recordDrops(stats)
	if len(pending) == 0 {
		return []model.TransactionRecord{}, stats, nil
	}

	layout, err := detectLayout(pending[0].date, layouts)
	if err != nil {
		return nil, stats, errors.Wrapf(err, "row %d", pending[0].rowNum)
	}
	stats.DateLayout = layout

	out := make([]model.TransactionRecord, len(pending))
	for i, p := range pending {
		ts, err := time.Parse(layout, p.date)
		if err != nil {
			return nil, stats, errors.Wrapf(ErrInvalidDate, "row %d: %q does not match layout %q", p.rowNum, p.date, layout)
		}
		p.rec.InvoiceDate = ts
		out[i] = p.rec
	}
	stats.Kept = len(out)
	return out, stats, nil
}

func detectLayout(value string, layouts []string) (string, error) {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, value); err == nil {
			return layout, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidDate, "%q matches no known layout", value)
}

// parseNumber accepts finite decimal numbers, surrounding spaces allowed.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func recordDrops(s LoadStats) {
	metrics.DatasetRowsDropped.WithLabelValues("missing_fields").Add(float64(s.MissingFields))
	metrics.DatasetRowsDropped.WithLabelValues("non_numeric").Add(float64(s.NonNumeric))
	metrics.DatasetRowsDropped.WithLabelValues("non_positive").Add(float64(s.NonPositive))
}
