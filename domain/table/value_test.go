package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueTriState(t *testing.T) {
	// Missing is distinct from empty text and from zero.
	missing := NewMissingValue()
	zero := NewNumericValue(0)
	assert.True(t, missing.IsMissing)
	assert.False(t, zero.IsMissing)
	assert.True(t, zero.IsNumeric())
	assert.Equal(t, 0.0, zero.AsFloat64())

	// Empty text collapses into missing at construction.
	assert.True(t, NewStringValue("").IsMissing)
	assert.False(t, NewStringValue("x").IsMissing)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", NewMissingValue().String())
	assert.Equal(t, "1200.5", NewNumericValue(1200.50).String())
	assert.Equal(t, "100", NewNumericValue(100).String())
	assert.Equal(t, "SHOP-001", NewStringValue("SHOP-001").String())

	midnight := NewTimestampValue(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-05", midnight.String())
	withTime := NewTimestampValue(time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-05 14:30:00", withTime.String())
}

func TestRowHelpers(t *testing.T) {
	row := Row{NewStringValue("1"), NewMissingValue()}
	assert.False(t, row.AllMissing())
	assert.True(t, Row{NewMissingValue(), NewMissingValue()}.AllMissing())

	// Get on an out-of-schema name is missing, never a panic.
	assert.True(t, row.Get("No Such Column").IsMissing)
}
