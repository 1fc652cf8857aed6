package table

import "salesnorm/domain/schema"

// RawTable is what the workbook reader hands the normalizer: a grid of
// untyped cell text plus the composite header labels captured from the two
// fixed header rows. Labels and Cells rows are rectangular - every row has
// one entry per source column.
type RawTable struct {
	// Labels holds, per column, the stacked header labels (top row first).
	// Blank labels are kept as empty strings so positions stay aligned.
	Labels [][]string
	// Cells holds the data rows below the header, as raw cell text.
	Cells [][]string
}

// ColumnCount returns the width of the raw grid.
func (r RawTable) ColumnCount() int {
	return len(r.Labels)
}

// Row is one canonical record: exactly 16 values in schema.FinalColumns
// order.
type Row []Value

// Get returns the value for a canonical field name.
func (r Row) Get(column string) Value {
	idx := schema.ColumnIndex(column)
	if idx < 0 || idx >= len(r) {
		return NewMissingValue()
	}
	return r[idx]
}

// AllMissing reports whether every field of the row is missing.
func (r Row) AllMissing() bool {
	for _, v := range r {
		if !v.IsMissing {
			return false
		}
	}
	return true
}

// Table is the canonical output: an ordered sequence of 16-field rows.
// Built once per normalization, never mutated afterwards.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty canonical table with the fixed column set.
func NewTable() *Table {
	cols := make([]string, len(schema.FinalColumns))
	copy(cols, schema.FinalColumns)
	return &Table{Columns: cols}
}

// Column returns the values of one canonical field across all rows.
func (t *Table) Column(column string) []Value {
	idx := schema.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	out := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[idx])
	}
	return out
}

// Head returns at most n leading rows, for previews.
func (t *Table) Head(n int) []Row {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}
