package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/murzabaevb/levelplot/pkg/errors"
)

const sampleCSV = `chart,legend,start,stop,level
uplink,GSM,890,915,2
uplink,LTE,880,915,2
downlink,GSM,935,960,3
downlink,NR,940,960,1
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	if len(ds.Charts) != 2 {
		t.Fatalf("charts = %d, want 2", len(ds.Charts))
	}
	if ds.Charts[0].ID != "uplink" || ds.Charts[1].ID != "downlink" {
		t.Errorf("chart order = [%s, %s], want [uplink, downlink]", ds.Charts[0].ID, ds.Charts[1].ID)
	}
	if got := ds.RowCount(); got != 4 {
		t.Errorf("RowCount() = %d, want 4", got)
	}
	wantLegends := []string{"GSM", "LTE", "NR"}
	if len(ds.Legends) != len(wantLegends) {
		t.Fatalf("legends = %v, want %v", ds.Legends, wantLegends)
	}
	for i, l := range wantLegends {
		if ds.Legends[i] != l {
			t.Errorf("legend[%d] = %q, want %q", i, ds.Legends[i], l)
		}
	}

	row := ds.Charts[0].Rows[0]
	if row.Start != 890 || row.Stop != 915 || row.Level != 2 {
		t.Errorf("first row = %+v, want start=890 stop=915 level=2", row)
	}
}

func TestReadCSVHeaderVariants(t *testing.T) {
	// Mixed case headers and an extra column should both be tolerated.
	in := "Chart,LEGEND,Start,Stop,Level,Comment\na,x,1,2,3,ignored\n"
	ds, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if got := ds.RowCount(); got != 1 {
		t.Errorf("RowCount() = %d, want 1", got)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	in := "chart,legend,start,stop\na,x,1,2\n"
	_, err := ReadCSV(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Fatalf("error = %v, want INVALID_COLUMN", err)
	}
	if !strings.Contains(err.Error(), "level") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadCSVBadNumber(t *testing.T) {
	in := "chart,legend,start,stop,level\na,x,1,two,3\n"
	_, err := ReadCSV(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidRow) {
		t.Fatalf("error = %v, want INVALID_ROW", err)
	}
	if !strings.Contains(err.Error(), "stop") {
		t.Errorf("error should name the bad column: %v", err)
	}
}

func TestReadCSVExclude(t *testing.T) {
	tests := []struct {
		value string
		want  int // rows remaining
	}{
		{"true", 1},
		{"TRUE", 1},
		{"yes", 1},
		{"x", 1},
		{"1", 1},
		{"false", 2},
		{"no", 2},
		{"0", 2},
		{"", 2},
	}
	for _, tt := range tests {
		t.Run("exclude="+tt.value, func(t *testing.T) {
			in := "chart,legend,start,stop,level,exclude\n" +
				"a,x,1,2,3," + tt.value + "\n" +
				"a,y,4,5,6,\n"
			ds, err := ReadCSV(strings.NewReader(in))
			if err != nil {
				t.Fatalf("ReadCSV() error: %v", err)
			}
			if got := ds.RowCount(); got != tt.want {
				t.Errorf("RowCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadCSVSkipsBlankLines(t *testing.T) {
	in := "chart,legend,start,stop,level\n\na,x,1,2,3\n\n"
	ds, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if got := ds.RowCount(); got != 1 {
		t.Errorf("RowCount() = %d, want 1", got)
	}
}

func TestReadJSON(t *testing.T) {
	in := `[
	  {"chart": "a", "legend": "x", "start": 1, "stop": 2, "level": 3},
	  {"chart": "a", "legend": "y", "start": 4, "stop": 5, "level": 6, "exclude": true}
	]`
	ds, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got := ds.RowCount(); got != 1 {
		t.Errorf("RowCount() = %d, want 1 (excluded row dropped)", got)
	}
}

func TestReadJSONMissingField(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"no start", `[{"chart": "a", "legend": "x", "stop": 5, "level": 2}]`, "start"},
		{"no level", `[{"chart": "a", "legend": "x", "start": 1, "stop": 5}]`, "level"},
		{"no chart", `[{"legend": "x", "start": 1, "stop": 5, "level": 2}]`, "chart"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidRow) {
				t.Fatalf("error = %v, want INVALID_ROW for missing %s", err, tt.field)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error should name the missing field %q: %v", tt.field, err)
			}
		})
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	in := `[{"chart": "a", "legend": "x", "start": 1, "stop": 2, "levle": 3}]`
	_, err := ReadJSON(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT for misspelled field", err)
	}
}

func TestReadYAML(t *testing.T) {
	in := `
- chart: uplink
  legend: GSM
  start: 890
  stop: 915
  level: 2
- chart: downlink
  legend: GSM
  start: 935
  stop: 960
  level: 3
`
	ds, err := ReadYAML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadYAML() error: %v", err)
	}
	if len(ds.Charts) != 2 {
		t.Errorf("charts = %d, want 2", len(ds.Charts))
	}
}

func TestReadYAMLMissingKey(t *testing.T) {
	in := `
- chart: uplink
  legend: GSM
  stop: 915
  level: 2
`
	_, err := ReadYAML(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidRow) {
		t.Fatalf("error = %v, want INVALID_ROW for missing start", err)
	}
	if !strings.Contains(err.Error(), "start") {
		t.Errorf("error should name the missing key: %v", err)
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"chart", "legend", "start", "stop", "level"},
		{"a", "x", 1, 2, 3},
		{"a", "y", 4, 5, 6},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() error: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error: %v", err)
	}

	ds, err := ReadXLSX(buf)
	if err != nil {
		t.Fatalf("ReadXLSX() error: %v", err)
	}
	if got := ds.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
	if ds.Charts[0].Rows[1].Level != 6 {
		t.Errorf("second row level = %v, want 6", ds.Charts[0].Rows[1].Level)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"bands.csv", FormatCSV, false},
		{"bands.XLSX", FormatXLSX, false},
		{"bands.json", FormatJSON, false},
		{"bands.yaml", FormatYAML, false},
		{"bands.yml", FormatYAML, false},
		{"bands.txt", "", true},
		{"bands", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Fatalf("error = %v, want INVALID_FORMAT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bands.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := ds.RowCount(); got != 4 {
		t.Errorf("RowCount() = %d, want 4", got)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadXLSXSheet(t *testing.T) {
	f := excelize.NewFile()
	first := f.GetSheetName(0)
	if _, err := f.NewSheet("bands"); err != nil {
		t.Fatalf("NewSheet() error: %v", err)
	}

	header := []any{"chart", "legend", "start", "stop", "level"}
	if err := f.SetSheetRow(first, "A1", &header); err != nil {
		t.Fatal(err)
	}
	firstRow := []any{"a", "x", 1, 2, 3}
	if err := f.SetSheetRow(first, "A2", &firstRow); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("bands", "A1", &header); err != nil {
		t.Fatal(err)
	}
	bandsRow := []any{"b", "y", 10, 20, 30}
	if err := f.SetSheetRow("bands", "A2", &bandsRow); err != nil {
		t.Fatal(err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error: %v", err)
	}
	data := buf.Bytes()

	ds, err := ReadXLSXSheet(bytes.NewReader(data), "bands")
	if err != nil {
		t.Fatalf("ReadXLSXSheet() error: %v", err)
	}
	if ds.Charts[0].ID != "b" {
		t.Errorf("chart = %q, want the named sheet's data", ds.Charts[0].ID)
	}

	if _, err := ReadXLSXSheet(bytes.NewReader(data), "missing"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown sheet error = %v, want INVALID_INPUT", err)
	}
}
