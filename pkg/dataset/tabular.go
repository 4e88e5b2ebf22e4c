package dataset

import (
	"strconv"
	"strings"

	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// columnMap resolves header names to column positions, case-insensitively.
type columnMap map[string]int

func newColumnMap(header []string) (columnMap, error) {
	m := make(columnMap, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := m[key]; !dup {
			m[key] = i
		}
	}
	if err := errors.ValidateColumns(header); err != nil {
		return nil, err
	}
	return m, nil
}

func (m columnMap) get(record []string, column string) string {
	idx, ok := m[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// rowFromRecord converts one tabular record into a signal row. The index is
// the 0-based data row position, used in error messages.
func rowFromRecord(m columnMap, record []string, index int) (signal.Row, error) {
	row := signal.Row{
		Chart:  m.get(record, "chart"),
		Legend: m.get(record, "legend"),
	}

	for _, f := range []struct {
		column string
		dst    *float64
	}{
		{"start", &row.Start},
		{"stop", &row.Stop},
		{"level", &row.Level},
	} {
		raw := m.get(record, f.column)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return signal.Row{}, errors.New(errors.ErrCodeInvalidRow,
				"row %d: column %q: cannot parse %q as a number", index, f.column, raw)
		}
		*f.dst = v
	}

	if raw := m.get(record, "exclude"); raw != "" {
		v, err := parseExclude(raw)
		if err != nil {
			return signal.Row{}, errors.New(errors.ErrCodeInvalidRow,
				"row %d: column %q: cannot parse %q as a boolean", index, "exclude", raw)
		}
		row.Exclude = v
	}

	return row, nil
}

// parseExclude accepts the boolean spellings that show up in spreadsheets.
func parseExclude(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "t", "yes", "y", "x", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// datasetFromRecords runs the shared tabular path: header mapping, record
// conversion, dataset construction.
func datasetFromRecords(header []string, records [][]string) (*signal.Dataset, error) {
	m, err := newColumnMap(header)
	if err != nil {
		return nil, err
	}

	rows := make([]signal.Row, 0, len(records))
	for i, record := range records {
		if isBlankRecord(record) {
			continue
		}
		row, err := rowFromRecord(m, record, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return signal.NewDataset(rows)
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
