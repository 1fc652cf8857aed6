package schema

// The sales report template this tool understands is fixed: every export
// carries the same 16 columns in the same order underneath a two-row header
// occupying sheet rows 4 and 5. Column meaning is positional; header text is
// never trusted because it varies between report exports. Adapting the tool
// to a different template means editing these constants and recompiling.

// FinalColumns lists the canonical field names assigned by position to the
// first 16 source columns.
var FinalColumns = []string{
	"Row No.",
	"Store Code",
	"Store Name",
	"Date",
	"Gross Sales",
	"Net Sales",
	"Discounted",
	"Item Void",
	"Void Value",
	"Item Refund",
	"Refund Value",
	"Terminal",
	"Unnamed",
	"Quantity",
	"Transaction",
	"Average Transaction Value",
}

// NumericColumns holds the 10 fields coerced to decimal numbers. The
// remaining fields stay textual, except Date which is parsed to a timestamp.
var NumericColumns = map[string]bool{
	"Gross Sales":               true,
	"Net Sales":                 true,
	"Discounted":                true,
	"Item Void":                 true,
	"Void Value":                true,
	"Item Refund":               true,
	"Refund Value":              true,
	"Quantity":                  true,
	"Transaction":               true,
	"Average Transaction Value": true,
}

const (
	// ColumnCount is the width of the canonical table.
	ColumnCount = 16

	// HeaderRowFirst and HeaderRowSecond are the 1-indexed sheet rows
	// holding the composite header. Data starts on the row after.
	HeaderRowFirst  = 4
	HeaderRowSecond = 5

	// GrossSalesColumn is the field the positive-value row filter keys on.
	GrossSalesColumn = "Gross Sales"

	// StoreNameColumn is truncated to its last StoreNameKeep characters.
	StoreNameColumn = "Store Name"
	StoreNameKeep   = 4

	// DateColumn is parsed day-first.
	DateColumn = "Date"
)

// IsNumeric reports whether the named canonical field carries a number.
func IsNumeric(column string) bool {
	return NumericColumns[column]
}

// ColumnIndex returns the position of the named canonical field, or -1.
func ColumnIndex(column string) int {
	for i, name := range FinalColumns {
		if name == column {
			return i
		}
	}
	return -1
}
