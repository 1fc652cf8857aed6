package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"salesnorm/domain/table"
)

// Coercer handles deterministic cell coercion for the fixed sales template.
// Every method is a pure function of its input; coercion failures produce
// missing values, never errors.
type Coercer struct {
	config Config
}

// Config defines the coercion rules
type Config struct {
	// MissingMarkers are trimmed cell texts treated as absent data.
	MissingMarkers []string `json:"missing_markers"`
	// DayFirstFormats are the date layouts tried in order. All ambiguous
	// layouts put the day before the month.
	DayFirstFormats []string `json:"day_first_formats"`
}

// DefaultConfig returns the rules for the fixed template: pandas-style
// missing markers and day-first dates.
func DefaultConfig() Config {
	return Config{
		MissingMarkers: []string{"", "nan", "None"},
		DayFirstFormats: []string{
			"02/01/2006",
			"2/1/2006",
			"02-01-2006",
			"2-1-2006",
			"02.01.2006",
			"2.1.2006",
			"02/01/2006 15:04:05",
			"2/1/2006 15:04:05",
			"02/01/06",
			"2/1/06",
			"2006-01-02",
			"2006-01-02 15:04:05",
		},
	}
}

// New creates a coercer with the given config
func New(config Config) *Coercer {
	return &Coercer{config: config}
}

// Clean trims cell text and maps missing markers to the missing value.
// Everything else stays text.
func (c *Coercer) Clean(raw string) table.Value {
	trimmed := strings.TrimSpace(raw)
	for _, marker := range c.config.MissingMarkers {
		if trimmed == marker {
			return table.NewMissingValue()
		}
	}
	return table.NewStringValue(trimmed)
}

// Numeric converts a value to a number, stripping thousands-separator
// commas first. Already-numeric values pass through untouched, which makes
// repeated coercion idempotent. Unparseable values become missing.
func (c *Coercer) Numeric(v table.Value) table.Value {
	switch {
	case v.IsMissing:
		return table.NewMissingValue()
	case v.IsNumeric():
		return v
	case v.IsTimestamp():
		// A timestamp never reads as a decimal number.
		return table.NewMissingValue()
	}

	cleanVal := strings.ReplaceAll(strings.TrimSpace(v.AsString()), ",", "")
	if cleanVal == "" {
		return table.NewMissingValue()
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return table.NewMissingValue()
	}
	return table.NewNumericValue(val)
}

// Date parses a value into a timestamp using day-before-month
// interpretation, so "03/04/2024" is the 3rd of April. Already-parsed
// timestamps pass through; anything unparseable becomes missing.
func (c *Coercer) Date(v table.Value) table.Value {
	switch {
	case v.IsMissing:
		return table.NewMissingValue()
	case v.IsTimestamp():
		return v
	case v.IsNumeric():
		return table.NewMissingValue()
	}

	strVal := strings.TrimSpace(v.AsString())
	for _, format := range c.config.DayFirstFormats {
		if t, err := time.Parse(format, strVal); err == nil {
			return table.NewTimestampValue(t)
		}
	}
	return table.NewMissingValue()
}

// TruncateTail keeps the last keep characters of a text value, counted in
// runes so multi-byte store names survive. Shorter text is kept whole;
// non-text values are rendered to text first, missing stays missing.
func (c *Coercer) TruncateTail(v table.Value, keep int) table.Value {
	if v.IsMissing {
		return table.NewMissingValue()
	}
	runes := []rune(v.String())
	if len(runes) > keep {
		runes = runes[len(runes)-keep:]
	}
	return table.NewStringValue(string(runes))
}
