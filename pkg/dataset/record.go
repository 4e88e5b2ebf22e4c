package dataset

import (
	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// record mirrors signal.Row with pointer fields so the structured decoders
// (JSON, YAML) can tell an absent key apart from a zero value. Tabular
// sources get the same guarantee from header validation instead.
type record struct {
	Chart   *string  `json:"chart" yaml:"chart"`
	Legend  *string  `json:"legend" yaml:"legend"`
	Start   *float64 `json:"start" yaml:"start"`
	Stop    *float64 `json:"stop" yaml:"stop"`
	Level   *float64 `json:"level" yaml:"level"`
	Exclude bool     `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// row converts the record to a signal.Row, returning an INVALID_ROW error
// naming the first missing required field. The index is the 0-based
// position of the record in its source.
func (rec record) row(index int) (signal.Row, error) {
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"chart", rec.Chart != nil},
		{"legend", rec.Legend != nil},
		{"start", rec.Start != nil},
		{"stop", rec.Stop != nil},
		{"level", rec.Level != nil},
	} {
		if !f.set {
			return signal.Row{}, errors.New(errors.ErrCodeInvalidRow,
				"row %d: missing required field %q", index, f.name)
		}
	}
	return signal.Row{
		Chart:   *rec.Chart,
		Legend:  *rec.Legend,
		Start:   *rec.Start,
		Stop:    *rec.Stop,
		Level:   *rec.Level,
		Exclude: rec.Exclude,
	}, nil
}

// rowsFromRecords converts decoded records into rows, failing on the first
// record with a missing field.
func rowsFromRecords(records []record) ([]signal.Row, error) {
	rows := make([]signal.Row, 0, len(records))
	for i, rec := range records {
		row, err := rec.row(i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
