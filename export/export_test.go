package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/gridmark/model"
)

func dataset(rows ...[]string) *model.Dataset {
	return &model.Dataset{Rows: rows}
}

func TestWriteCSV(t *testing.T) {
	ds := dataset(
		[]string{"name", "qty"},
		[]string{"bolt, hex", "12"},
		[]string{"line\nbreak", ""},
	)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, "name,qty\n") {
		t.Errorf("unexpected header line: %q", got)
	}
	// Commas and newlines inside cells must be quoted.
	if !strings.Contains(got, `"bolt, hex"`) {
		t.Errorf("comma cell not quoted: %q", got)
	}
	if !strings.Contains(got, "\"line\nbreak\"") {
		t.Errorf("newline cell not quoted: %q", got)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, &model.Dataset{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty dataset should produce no output, got %q", buf.String())
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	ds := dataset(
		[]string{"a", "b"},
		[]string{"c", "d"},
	)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, ds); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "a" || rows[1][1] != "d" {
		t.Errorf("unexpected cell values: %v", rows)
	}
}

func TestWriteXLSX_EmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, &model.Dataset{}); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(SheetName); idx < 0 {
		t.Errorf("workbook must still contain the %q sheet", SheetName)
	}
}
