// Package signal defines the levelplot domain model: signal rows grouped
// into charts, plus deterministic legend color assignment.
//
// A Row is one horizontal interval on a chart: the signal named Legend is
// active at height Level between Start and Stop on the shared x-axis.
// A Dataset is a validated, exclusion-filtered collection of rows, grouped
// by chart in first-appearance order.
package signal

import (
	"github.com/murzabaevb/levelplot/pkg/errors"
)

// Row is a single signal interval read from a tabular source.
type Row struct {
	Chart   string  `json:"chart" yaml:"chart"`
	Legend  string  `json:"legend" yaml:"legend"`
	Start   float64 `json:"start" yaml:"start"`
	Stop    float64 `json:"stop" yaml:"stop"`
	Level   float64 `json:"level" yaml:"level"`
	Exclude bool    `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Validate checks the row's invariants: finite numeric fields, a non-empty
// chart identifier, and start <= stop. The index is the 0-based position of
// the row in its source and is used in error messages.
func (r Row) Validate(index int) error {
	if err := errors.ValidateChartID(index, r.Chart); err != nil {
		return err
	}
	for _, f := range []struct {
		column string
		value  float64
	}{
		{"start", r.Start},
		{"stop", r.Stop},
		{"level", r.Level},
	} {
		if err := errors.ValidateNumeric(index, f.column, f.value); err != nil {
			return err
		}
	}
	return errors.ValidateInterval(index, r.Start, r.Stop)
}

// Width returns the interval span. A zero width row renders as a point.
func (r Row) Width() float64 { return r.Stop - r.Start }

// Midpoint returns the horizontal center of the interval, where the
// legend label is anchored.
func (r Row) Midpoint() float64 { return (r.Start + r.Stop) / 2 }
