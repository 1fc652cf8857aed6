package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaShape(t *testing.T) {
	assert.Len(t, FinalColumns, ColumnCount)
	assert.Len(t, NumericColumns, 10)

	// Every numeric column is a canonical column.
	for col := range NumericColumns {
		assert.GreaterOrEqual(t, ColumnIndex(col), 0, col)
	}

	// The six non-numeric fields.
	for _, col := range []string{"Row No.", "Store Code", "Store Name", "Date", "Terminal", "Unnamed"} {
		assert.False(t, IsNumeric(col), col)
	}
}

func TestColumnIndex(t *testing.T) {
	assert.Equal(t, 0, ColumnIndex("Row No."))
	assert.Equal(t, 4, ColumnIndex(GrossSalesColumn))
	assert.Equal(t, 15, ColumnIndex("Average Transaction Value"))
	assert.Equal(t, -1, ColumnIndex("missing"))
}

func TestStructuralErrors(t *testing.T) {
	err := NewTooFewColumnsError(10)
	assert.ErrorIs(t, err, ErrTooFewColumns)
	assert.True(t, IsStructuralError(err))

	assert.True(t, IsStructuralError(NewNoHeaderRowsError(2)))
	assert.False(t, IsStructuralError(ErrUnknownColumn))
}
