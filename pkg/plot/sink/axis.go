package sink

import (
	"fmt"
	"math"
)

// niceTicks returns human-friendly tick positions covering [min, max],
// using a 1-2-5 step progression. The target count is approximate; the
// result always has at least two ticks for a non-degenerate range.
func niceTicks(min, max float64, target int) []float64 {
	if target < 2 {
		target = 2
	}
	span := max - min
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return []float64{min}
	}

	step := niceStep(span / float64(target))
	first := math.Ceil(min/step) * step

	var ticks []float64
	for v := first; v <= max+step*1e-9; v += step {
		// Snap values like 0.30000000000000004 back onto the grid.
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return ticks
}

// niceStep rounds a raw step up to the nearest 1, 2, or 5 times a power
// of ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// formatTick renders a tick value without trailing float noise.
func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}
