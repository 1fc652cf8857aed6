package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"salesnorm/domain/table"
	"salesnorm/internal/errors"

	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet written into exported workbooks.
const SheetName = "normalized"

// Exporter serializes a canonical table to its two download formats. It is
// stateless; the table is never mutated.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// CSV renders the table as UTF-8 comma-delimited bytes: one header row with
// the 16 canonical field names, one line per row, no index column. Missing
// values render as empty cells.
func (e *Exporter) CSV(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV header")
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to write CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush CSV output")
	}
	return buf.Bytes(), nil
}

// Workbook renders the table as a single-sheet xlsx workbook with the same
// header and rows as the CSV. Numbers and dates keep their native cell
// types; missing values stay blank.
func (e *Exporter) Workbook(t *table.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, errors.Wrap(err, "failed to name export sheet")
	}

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "failed to write export header")
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute export cell reference")
		}
		if err := f.SetSheetRow(SheetName, ref, &cells); err != nil {
			return nil, errors.Wrapf(err, "failed to write export row %d", i+2)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize export workbook")
	}
	return buf.Bytes(), nil
}

// FileName returns the canonical download name for a format.
func FileName(format string) (string, error) {
	switch format {
	case "csv":
		return "normalized.csv", nil
	case "xlsx":
		return "normalized.xlsx", nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unsupported export format %q", format))
}

func cellValue(v table.Value) interface{} {
	switch {
	case v.IsMissing:
		return nil
	case v.IsNumeric():
		return v.AsFloat64()
	case v.IsTimestamp():
		return v.AsTime()
	default:
		return v.AsString()
	}
}
