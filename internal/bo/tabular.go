package bo

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// columnCandidates maps each invoice field to the BO column names that may
// carry it. Names are matched case-sensitively against the header row; the
// first candidate present wins.
var columnCandidates = []struct {
	field   string
	columns []string
}{
	{"client_name", []string{"Client Name", "client", "customer", "company"}},
	{"client_address", []string{"Address", "client_address", "address"}},
	{"client_trn", []string{"TRN", "trn", "tax_id", "vat"}},
	{"bo_no", []string{"BO Number", "bo_no", "order_no", "order_number", "po_no"}},
	{"description", []string{"Description", "item", "product", "details"}},
	{"quantity", []string{"Quantity", "qty", "units", "volume"}},
	{"rate", []string{"Rate", "unit_price", "price", "unit_cost", "amount"}},
	{"delivery_month", []string{"Delivery Month", "delivery", "month"}},
}

// mapColumns resolves the header/first-data-row pair into field values.
func mapColumns(header, row []string) map[string]string {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	values := map[string]string{}
	for _, cand := range columnCandidates {
		for _, col := range cand.columns {
			i, ok := index[col]
			if !ok || i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				values[cand.field] = v
				break
			}
		}
	}
	return values
}

// FromCSV reads a CSV business order and returns field values taken from the
// first data row.
func FromCSV(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) < 2 {
		return map[string]string{}, nil
	}
	return mapColumns(records[0], records[1]), nil
}

// FromWorkbook reads a spreadsheet business order (.xlsx) and returns field
// values taken from the first data row of the first sheet.
func FromWorkbook(data []byte) (map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return map[string]string{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return map[string]string{}, nil
	}
	return mapColumns(rows[0], rows[1]), nil
}
