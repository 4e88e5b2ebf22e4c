// Package dataset loads signal rows from tabular and structured sources.
//
// # Overview
//
// Four input formats are supported, detected from the file extension or
// selected explicitly:
//
//   - CSV: header row plus one data row per signal interval
//   - XLSX: first sheet, same column layout as CSV
//   - JSON: array of row objects
//   - YAML: sequence of row mappings
//
// Every loader returns a validated [signal.Dataset]: rows are checked,
// excluded rows are dropped, and charts are grouped in first-seen order.
//
// Basic usage:
//
//	ds, err := dataset.Load("bands.csv")
//
// Or from a stream with an explicit format:
//
//	ds, err := dataset.Read(r, dataset.FormatJSON)
//
// Tabular sources (CSV, XLSX) require the columns chart, legend, start,
// stop, and level; the exclude column is optional. Header matching is
// case-insensitive and extra columns are ignored.
package dataset

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/murzabaevb/levelplot/pkg/errors"
	"github.com/murzabaevb/levelplot/pkg/signal"
)

// Format identifies an input format.
type Format string

// Supported input formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat maps a file extension to an input format. It returns an
// INVALID_FORMAT error for unknown extensions.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported input format %q (want .csv, .xlsx, .json, .yaml)", filepath.Ext(path))
	}
}

// Load reads the file at path, detecting the format from its extension.
func Load(path string) (*signal.Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	return Read(f, format)
}

// Read decodes rows from r in the given format and builds a dataset.
func Read(r io.Reader, format Format) (*signal.Dataset, error) {
	return ReadSheet(r, format, "")
}

// ReadSheet is Read with an XLSX sheet selection. The sheet name is
// ignored for other formats; empty means the first sheet.
func ReadSheet(r io.Reader, format Format, sheet string) (*signal.Dataset, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSXSheet(r, sheet)
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
}
