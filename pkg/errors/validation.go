package errors

import (
	"math"
	"strings"
)

// RequiredColumns are the columns every tabular signal source must provide.
// The exclude column is optional and defaults to false.
var RequiredColumns = []string{"chart", "legend", "start", "stop", "level"}

// ValidateColumns checks that all required columns are present.
// Column matching is case-insensitive. It returns an INVALID_COLUMN error
// naming the first missing column.
func ValidateColumns(present []string) error {
	seen := make(map[string]bool, len(present))
	for _, c := range present {
		seen[strings.ToLower(strings.TrimSpace(c))] = true
	}
	for _, required := range RequiredColumns {
		if !seen[required] {
			return New(ErrCodeInvalidColumn, "missing required column: %s", required)
		}
	}
	return nil
}

// ValidateNumeric checks that a parsed numeric field is a usable value.
// NaN and infinities are rejected with an INVALID_ROW error naming the
// row (0-based data row index) and column.
func ValidateNumeric(row int, column string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidRow, "row %d: column %q is not a finite number", row, column)
	}
	return nil
}

// ValidateInterval checks the start <= stop invariant for a row.
// Equal start and stop is allowed and renders as a point-width segment.
func ValidateInterval(row int, start, stop float64) error {
	if start > stop {
		return New(ErrCodeInvalidRow, "row %d: start (%g) greater than stop (%g)", row, start, stop)
	}
	return nil
}

// ValidateXRange checks an explicit x-axis range.
func ValidateXRange(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return New(ErrCodeInvalidRange, "x-axis range bounds must be finite")
	}
	if min >= max {
		return New(ErrCodeInvalidRange, "x-axis range min (%g) must be less than max (%g)", min, max)
	}
	return nil
}

// ValidateChartID rejects empty or whitespace-only chart identifiers.
func ValidateChartID(row int, chart string) error {
	if strings.TrimSpace(chart) == "" {
		return New(ErrCodeInvalidRow, "row %d: chart identifier cannot be empty", row)
	}
	return nil
}
