package schema

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrTooFewColumns means the source table cannot fill all 16 canonical
	// field slots. Padding with missing columns would silently misalign
	// every field to the right of the gap, so this is always fatal.
	ErrTooFewColumns = errors.New("source table has fewer columns than the canonical schema")

	// ErrNoHeaderRows means the sheet ends before the fixed header rows.
	ErrNoHeaderRows = errors.New("sheet has no data at the fixed header rows")

	// ErrUnknownColumn is returned when a caller names a field outside the
	// canonical schema.
	ErrUnknownColumn = errors.New("unknown canonical column")
)

// NewTooFewColumnsError reports how short the source table actually was.
func NewTooFewColumnsError(got int) error {
	return fmt.Errorf("%w: got %d, need %d", ErrTooFewColumns, got, ColumnCount)
}

// NewNoHeaderRowsError reports how many rows the sheet actually had.
func NewNoHeaderRowsError(got int) error {
	return fmt.Errorf("%w: sheet has %d rows, header occupies rows %d-%d", ErrNoHeaderRows, got, HeaderRowFirst, HeaderRowSecond)
}

// IsStructuralError reports whether err describes a source table that does
// not match the fixed template shape.
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrTooFewColumns) || errors.Is(err, ErrNoHeaderRows)
}
