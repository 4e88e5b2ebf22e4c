package dataset

import (
	"encoding/json"
	"io"

	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// ReadJSON decodes a JSON array of row objects into a dataset:
//
//	[
//	  {"chart": "uplink", "legend": "GSM", "start": 890, "stop": 915, "level": 2}
//	]
//
// Unknown fields are rejected so typos in column names surface as errors
// instead of silently producing zero values, and a row missing a required
// field fails with an INVALID_ROW error instead of defaulting to zero.
func ReadJSON(r io.Reader) (*signal.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}

	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, err
	}
	return signal.NewDataset(rows)
}
