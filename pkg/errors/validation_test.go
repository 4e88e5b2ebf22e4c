package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr bool
		missing string
	}{
		{"all present", []string{"chart", "legend", "start", "stop", "level"}, false, ""},
		{"with optional exclude", []string{"chart", "legend", "start", "stop", "level", "exclude"}, false, ""},
		{"case insensitive", []string{"Chart", "LEGEND", "Start", "Stop", "Level"}, false, ""},
		{"whitespace trimmed", []string{" chart ", "legend", "start", "stop", "level"}, false, ""},

		{"missing start", []string{"chart", "legend", "stop", "level"}, true, "start"},
		{"missing chart", []string{"legend", "start", "stop", "level"}, true, "chart"},
		{"empty header", nil, true, "chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumns(tt.columns)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateColumns(%v) error = %v, wantErr %v", tt.columns, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidColumn) {
					t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidColumn)
				}
				if tt.missing != "" && !strings.Contains(err.Error(), tt.missing) {
					t.Errorf("error %q should name missing column %q", err.Error(), tt.missing)
				}
			}
		})
	}
}

func TestValidateNumeric(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -3.5, false},
		{"positive", 42.1, false},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNumeric(3, "level", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNumeric(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRow) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidRow)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		wantErr     bool
	}{
		{"ordered", 1, 4, false},
		{"point width", 2, 2, false},
		{"reversed", 4, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterval(0, tt.start, tt.stop)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInterval(%v, %v) error = %v, wantErr %v", tt.start, tt.stop, err, tt.wantErr)
			}
		})
	}
}

func TestValidateXRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"valid", 2, 8, false},
		{"negative span", -10, -2, false},
		{"min equals max", 3, 3, true},
		{"min greater than max", 8, 2, true},
		{"NaN bound", math.NaN(), 5, true},
		{"infinite bound", 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateXRange(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateXRange(%v, %v) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRange) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidRange)
			}
		})
	}
}

func TestValidateChartID(t *testing.T) {
	if err := ValidateChartID(0, "Voltage"); err != nil {
		t.Errorf("ValidateChartID() unexpected error: %v", err)
	}
	if err := ValidateChartID(2, "  "); err == nil {
		t.Error("ValidateChartID() should reject whitespace-only chart ID")
	}
}
