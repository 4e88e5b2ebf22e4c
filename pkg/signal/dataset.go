package signal

import (
	"github.com/murzabaevb/levelplot/pkg/errors"
)

// Chart groups the rows sharing one chart identifier.
// Rows keep their source order; the layout stage uses it as a tie-break.
type Chart struct {
	ID   string
	Rows []Row
}

// Dataset is a validated, exclusion-filtered set of rows grouped by chart.
// Charts appear in first-seen order, which determines subplot stacking.
type Dataset struct {
	Charts  []Chart
	Legends []string // distinct legends in first-appearance order across all charts
}

// NewDataset validates rows, drops excluded ones, and groups the remainder
// by chart. It returns NO_DATA if nothing is left after filtering, and the
// first validation error otherwise. Input order is preserved within charts
// and for first-appearance ordering of charts and legends.
func NewDataset(rows []Row) (*Dataset, error) {
	for i, r := range rows {
		if err := r.Validate(i); err != nil {
			return nil, err
		}
	}

	ds := &Dataset{}
	chartIndex := make(map[string]int)
	legendSeen := make(map[string]bool)

	for _, r := range rows {
		if r.Exclude {
			continue
		}
		idx, ok := chartIndex[r.Chart]
		if !ok {
			idx = len(ds.Charts)
			chartIndex[r.Chart] = idx
			ds.Charts = append(ds.Charts, Chart{ID: r.Chart})
		}
		ds.Charts[idx].Rows = append(ds.Charts[idx].Rows, r)

		if !legendSeen[r.Legend] {
			legendSeen[r.Legend] = true
			ds.Legends = append(ds.Legends, r.Legend)
		}
	}

	if len(ds.Charts) == 0 {
		return nil, errors.New(errors.ErrCodeNoData, "no rows left after exclusion filtering")
	}
	return ds, nil
}

// RowCount returns the number of rows kept across all charts.
func (d *Dataset) RowCount() int {
	n := 0
	for _, c := range d.Charts {
		n += len(c.Rows)
	}
	return n
}

// XExtent returns the minimal x-range covering every interval in the
// dataset, computed across all charts so subplots stay comparable.
func (d *Dataset) XExtent() (min, max float64) {
	first := true
	for _, c := range d.Charts {
		for _, r := range c.Rows {
			if first {
				min, max = r.Start, r.Stop
				first = false
				continue
			}
			if r.Start < min {
				min = r.Start
			}
			if r.Stop > max {
				max = r.Stop
			}
		}
	}
	return min, max
}

// Colors returns the legend color map for this dataset. The assignment is
// a pure function of the ordered distinct legends, so repeated calls (and
// repeated renders) always produce the same mapping.
func (d *Dataset) Colors() ColorMap {
	return AssignColors(d.Legends)
}
