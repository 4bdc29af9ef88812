package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCell(t *testing.T) {
	assert.Equal(t, Cell{}, NewCell(""))
	assert.Equal(t, Cell{Value: " ", Valid: true}, NewCell(" "))
	assert.Equal(t, Cell{Value: "R1", Valid: true}, NewCell("R1"))
}

func TestTable_WithTrimmedHeaders(t *testing.T) {
	in := Table{
		Name:    "result",
		Columns: []string{" DriverName ", "Route\t"},
		Rows:    [][]string{{"Ana", "R1"}},
	}

	out := in.WithTrimmedHeaders()
	require.Equal(t, []string{"DriverName", "Route"}, out.Columns)

	// The copy must not share storage with the input.
	out.Rows[0][0] = "changed"
	out.Columns[0] = "changed"
	assert.Equal(t, "Ana", in.Rows[0][0])
	assert.Equal(t, " DriverName ", in.Columns[0])
}

func TestTable_FormatsSurviveHeaderTrim(t *testing.T) {
	date := CellFormat{Kind: CellNumber, NumFmt: 14}
	in := Table{
		Columns: []string{" Fecha "},
		Rows:    [][]string{{"45415"}, {"x"}},
		Formats: [][]CellFormat{{date}, nil},
	}

	out := in.WithTrimmedHeaders()
	assert.Equal(t, date, out.Format(0, 0))
	assert.Equal(t, CellFormat{}, out.Format(1, 0), "nil rows are text")
	assert.Equal(t, CellFormat{}, out.Format(0, 3))
	assert.Equal(t, CellFormat{}, out.Format(9, 0))

	out.Formats[0][0] = CellFormat{}
	assert.Equal(t, date, in.Format(0, 0))
}

func TestTable_Cell(t *testing.T) {
	tbl := Table{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"1"}, {"1", "2", "3"}},
	}

	assert.Equal(t, "1", tbl.Cell(0, 0))
	assert.Equal(t, "", tbl.Cell(0, 2), "short rows pad with empty cells")
	assert.Equal(t, "3", tbl.Cell(1, 2))
	assert.Equal(t, "", tbl.Cell(5, 0))
	assert.Equal(t, -1, tbl.ColumnIndex("missing"))
	assert.Equal(t, 1, tbl.ColumnIndex("b"))
}

func TestReport_Tables(t *testing.T) {
	r := &Report{
		Original: Table{Name: "result", Columns: []string{"DriverName"}, Rows: [][]string{{"Ana"}}},
		Drivers: []DriverSummary{
			{DriverName: "Ana", PQTotales: 2, Paradas: 1, EntregasTEMU: 1},
		},
		Totals: DriverSummary{DriverName: TotalsLabel, PQTotales: 2, Paradas: 1, EntregasTEMU: 1},
	}

	tables := r.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, SheetOriginal, tables[0].Name)
	assert.Equal(t, SheetSummary, tables[1].Name)
	assert.Equal(t, SummaryColumns, tables[1].Columns)
	assert.Equal(t, [][]string{
		{"Ana", "2", "1", "1"},
		{"TOTAL GENERAL", "2", "1", "1"},
	}, tables[1].Rows)
	assert.True(t, tables[1].IsNumeric(1))
	assert.False(t, tables[1].IsNumeric(0))
	assert.Equal(t, "result", r.Original.Name, "Tables must not rename the stored original")
}

func TestDriverSummary_Add(t *testing.T) {
	a := DriverSummary{DriverName: TotalsLabel, PQTotales: 1, Paradas: 2, EntregasTEMU: 3}
	b := DriverSummary{DriverName: "Ana", PQTotales: 4, Paradas: 5, EntregasTEMU: 6}

	got := a.Add(b)
	assert.Equal(t, DriverSummary{DriverName: TotalsLabel, PQTotales: 5, Paradas: 7, EntregasTEMU: 9}, got)
}
