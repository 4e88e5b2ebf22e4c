package dataset

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// ReadYAML decodes a YAML sequence of row mappings into a dataset:
//
//	- chart: uplink
//	  legend: GSM
//	  start: 890
//	  stop: 915
//	  level: 2
//
// Unknown keys are rejected, and a mapping missing a required key fails
// with an INVALID_ROW error instead of defaulting to zero.
func ReadYAML(r io.Reader) (*signal.Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}

	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, err
	}
	return signal.NewDataset(rows)
}
