package dataset

import (
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// ReadXLSX decodes the first sheet of an XLSX workbook into a dataset.
// The sheet must carry the same header row and columns as a CSV source.
func ReadXLSX(r io.Reader) (*signal.Dataset, error) {
	return ReadXLSXSheet(r, "")
}

// ReadXLSXSheet decodes the named sheet of an XLSX workbook. An empty
// name selects the first sheet; an unknown name is an INVALID_INPUT
// error listing the available sheets.
func ReadXLSXSheet(r io.Reader, sheet string) (*signal.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeNoData, "xlsx workbook has no sheets")
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"xlsx workbook has no sheet %q (available: %v)", sheet, sheets)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeNoData, "sheet %q is empty", sheet)
	}

	return datasetFromRecords(rows[0], rows[1:])
}
