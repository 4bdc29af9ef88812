package testutil

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is a worksheet fixture: the first row is the header.
type Sheet struct {
	Name string
	Rows [][]any
}

// DeliveryHeaders is the header row of a well-formed delivery export.
var DeliveryHeaders = []any{"DriverName", "Route", "RecipientName", "customerAccountCode", "TrackingNo", "FinalStatus"}

// NewWorkbook builds an .xlsx file in memory containing sheets in order.
func NewWorkbook(t *testing.T, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("create sheet %q: %v", s.Name, err)
		}

		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(s.Name, cell, &values); err != nil {
				t.Fatalf("write row %d of %q: %v", r+1, s.Name, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// DeliveryWorkbook builds a single-sheet delivery export with the standard
// headers followed by rows.
func DeliveryWorkbook(t *testing.T, sheetName string, rows ...[]any) []byte {
	t.Helper()

	all := make([][]any, 0, len(rows)+1)
	all = append(all, DeliveryHeaders)
	all = append(all, rows...)
	return NewWorkbook(t, Sheet{Name: sheetName, Rows: all})
}

// ReadSheet returns every row of sheet in the encoded workbook data.
func ReadSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read sheet %q: %v", sheet, err)
	}
	return rows
}

// SheetList returns the sheet names of the encoded workbook data in order.
func SheetList(t *testing.T, data []byte) []string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	return f.GetSheetList()
}
