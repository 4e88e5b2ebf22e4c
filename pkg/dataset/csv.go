package dataset

import (
	"encoding/csv"
	"io"

	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// ReadCSV decodes a CSV stream with a header row into a dataset.
// Records may have trailing columns beyond the known ones; they are
// ignored. Blank lines are skipped.
func ReadCSV(r io.Reader) (*signal.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode csv")
	}
	if len(all) == 0 {
		return nil, errors.New(errors.ErrCodeNoData, "csv input is empty")
	}

	return datasetFromRecords(all[0], all[1:])
}
