package profiling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesnorm/domain/schema"
	"salesnorm/domain/table"
)

func tableWithGrossSales(values ...table.Value) *table.Table {
	t := table.NewTable()
	idx := schema.ColumnIndex(schema.GrossSalesColumn)
	for _, v := range values {
		row := make(table.Row, schema.ColumnCount)
		for i := range row {
			row[i] = table.NewMissingValue()
		}
		row[idx] = v
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestProfileCoversAllNumericColumns(t *testing.T) {
	profiles := NewProfiler().Profile(tableWithGrossSales(table.NewNumericValue(10)))
	require.Len(t, profiles, len(schema.NumericColumns))

	// Canonical column order is preserved.
	assert.Equal(t, schema.GrossSalesColumn, profiles[0].Name)
	assert.Equal(t, "Average Transaction Value", profiles[len(profiles)-1].Name)
}

func TestProfileStatistics(t *testing.T) {
	profiles := NewProfiler().Profile(tableWithGrossSales(
		table.NewNumericValue(10),
		table.NewNumericValue(20),
		table.NewNumericValue(60),
		table.NewMissingValue(),
	))

	gross := profiles[0]
	assert.Equal(t, 3, gross.Count)
	assert.Equal(t, 1, gross.Missing)
	assert.Equal(t, 90.0, gross.Sum)
	assert.Equal(t, 30.0, gross.Mean)
	assert.Equal(t, 20.0, gross.Median)
	assert.Equal(t, 10.0, gross.Min)
	assert.Equal(t, 60.0, gross.Max)
}

func TestProfileEmptyColumn(t *testing.T) {
	profiles := NewProfiler().Profile(tableWithGrossSales(table.NewMissingValue()))

	gross := profiles[0]
	assert.Equal(t, 0, gross.Count)
	assert.Equal(t, 1, gross.Missing)
	assert.Equal(t, 0.0, gross.Sum)
	assert.Equal(t, 0.0, gross.Mean)
}
