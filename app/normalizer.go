package app

import (
	"log"
	"strings"

	"salesnorm/domain/schema"
	"salesnorm/domain/table"
	"salesnorm/internal/coerce"
	"salesnorm/internal/errors"
)

// Normalizer turns a raw template sheet into the canonical 16-column table.
// It holds no mutable state, so one instance can serve concurrent requests;
// every invocation is a pure function of its input.
//
// Stage order is load-bearing: the numeric coercion and the positive Gross
// Sales filter assume the positional rename and string cleanup have already
// run.
type Normalizer struct {
	coercer *coerce.Coercer
}

// NewNormalizer creates a normalizer with the fixed template rules.
func NewNormalizer() *Normalizer {
	return &Normalizer{coercer: coerce.New(coerce.DefaultConfig())}
}

// NewNormalizerWithConfig creates a normalizer with custom coercion rules.
func NewNormalizerWithConfig(config coerce.Config) *Normalizer {
	return &Normalizer{coercer: coerce.New(config)}
}

// Normalize runs the full pipeline over a raw sheet.
func (n *Normalizer) Normalize(raw table.RawTable) (*table.Table, error) {
	flat := FlattenLabels(raw.Labels)
	log.Printf("[Normalizer] Flattened %d column labels, %d data rows", len(flat), len(raw.Cells))

	if raw.ColumnCount() < schema.ColumnCount {
		return nil, errors.StructureInvalid(schema.NewTooFewColumnsError(raw.ColumnCount()))
	}

	out := table.NewTable()
	for _, cells := range raw.Cells {
		row := n.cleanRow(cells)
		if row.AllMissing() {
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	n.parseDates(out)
	n.truncateStoreNames(out)
	n.coerceNumerics(out)
	out.Rows = n.filterPositiveGrossSales(out.Rows)
	out.Rows = dropAllMissing(out.Rows)

	log.Printf("[Normalizer] Normalized table: %d rows retained of %d raw", len(out.Rows), len(raw.Cells))
	return out, nil
}

// FlattenLabels combines each column's stacked header labels into one
// descriptive string: trim every label, drop the blank ones, join the rest
// with " | ". A column with only blank labels yields "".
//
// The result is diagnostic only - field identity comes from column position,
// never from header text, because headers vary across report exports while
// column order does not.
func FlattenLabels(labels [][]string) []string {
	flat := make([]string, len(labels))
	for i, parts := range labels {
		kept := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				kept = append(kept, trimmed)
			}
		}
		flat[i] = strings.Join(kept, " | ")
	}
	return flat
}

// cleanRow performs the positional rename and string cleanup for one row:
// keep the first 16 cells, trim them, and map missing markers ("", "nan",
// "None") to the missing value.
func (n *Normalizer) cleanRow(cells []string) table.Row {
	row := make(table.Row, schema.ColumnCount)
	for i := 0; i < schema.ColumnCount; i++ {
		if i < len(cells) {
			row[i] = n.coercer.Clean(cells[i])
		} else {
			row[i] = table.NewMissingValue()
		}
	}
	return row
}

// parseDates parses the Date field day-first; unparseable text becomes
// missing, never an error.
func (n *Normalizer) parseDates(t *table.Table) {
	idx := schema.ColumnIndex(schema.DateColumn)
	for _, row := range t.Rows {
		row[idx] = n.coercer.Date(row[idx])
	}
}

// truncateStoreNames keeps the last 4 characters of every store name.
func (n *Normalizer) truncateStoreNames(t *table.Table) {
	idx := schema.ColumnIndex(schema.StoreNameColumn)
	for _, row := range t.Rows {
		row[idx] = n.coercer.TruncateTail(row[idx], schema.StoreNameKeep)
	}
}

// coerceNumerics converts the 10 numeric fields, stripping thousands
// separators; unparseable cells become missing without dropping the row.
func (n *Normalizer) coerceNumerics(t *table.Table) {
	for i, col := range t.Columns {
		if !schema.IsNumeric(col) {
			continue
		}
		for _, row := range t.Rows {
			row[i] = n.coercer.Numeric(row[i])
		}
	}
}

// filterPositiveGrossSales re-coerces Gross Sales (idempotent on numbers)
// and keeps only rows where it is present and strictly positive. Rows
// failing the filter are dropped, never repaired.
func (n *Normalizer) filterPositiveGrossSales(rows []table.Row) []table.Row {
	idx := schema.ColumnIndex(schema.GrossSalesColumn)
	kept := rows[:0]
	for _, row := range rows {
		gross := n.coercer.Numeric(row[idx])
		row[idx] = gross
		if gross.IsNumeric() && gross.AsFloat64() > 0 {
			kept = append(kept, row)
		}
	}
	return kept
}

func dropAllMissing(rows []table.Row) []table.Row {
	kept := rows[:0]
	for _, row := range rows {
		if !row.AllMissing() {
			kept = append(kept, row)
		}
	}
	return kept
}
