package sink

import (
	"math"
	"testing"
)

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		target   int
		want     []float64
	}{
		{"unit range", 0, 10, 5, []float64{0, 2, 4, 6, 8, 10}},
		{"offset range", 1, 9, 8, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"negative span", -3, 3, 5, []float64{-2, 0, 2}},
		{"fractional", 1.5, 5.5, 4, []float64{2, 3, 4, 5}},
		{"large values", 700, 2700, 4, []float64{1000, 1500, 2000, 2500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := niceTicks(tt.min, tt.max, tt.target)
			if len(got) != len(tt.want) {
				t.Fatalf("niceTicks(%v, %v, %d) = %v, want %v", tt.min, tt.max, tt.target, got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("tick[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNiceTicksDegenerateRange(t *testing.T) {
	got := niceTicks(5, 5, 4)
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("niceTicks(5, 5, 4) = %v, want [5]", got)
	}
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{0.7, 1},
		{1.3, 2},
		{3.4, 5},
		{7.2, 10},
		{0.034, 0.05},
		{120, 200},
	}
	for _, tt := range tests {
		if got := niceStep(tt.raw); math.Abs(got-tt.want) > tt.want*1e-9 {
			t.Errorf("niceStep(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{3, "3"},
		{-2, "-2"},
		{0, "0"},
		{2.5, "2.5"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		if got := formatTick(tt.v); got != tt.want {
			t.Errorf("formatTick(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
