package workbook

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"

	"resumenapi/internal/shared/testutil"
	"resumenapi/pkg/contracts/domain"
)

func newTestCodec() *Codec {
	return NewCodec(Limits{})
}

func TestDecodePrefersNamedSheet(t *testing.T) {
	data := testutil.NewWorkbook(t,
		testutil.Sheet{Name: "cover", Rows: [][]any{{"ignored"}}},
		testutil.Sheet{Name: "result", Rows: [][]any{
			{" DriverName ", "Route"},
			{"Ana", "R1"},
			{"Luis"},
		}},
	)

	table, err := newTestCodec().Decode(bytes.NewReader(data), "result")
	require.NoError(t, err)

	assert.Equal(t, "result", table.Name)
	assert.Equal(t, []string{" DriverName ", "Route"}, table.Columns, "headers are trimmed by the builder, not the codec")
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Luis", ""}, table.Rows[1])
}

func TestDecodeFallsBackToFirstSheet(t *testing.T) {
	data := testutil.NewWorkbook(t,
		testutil.Sheet{Name: "Hoja1", Rows: [][]any{{"DriverName"}, {"Ana"}}},
		testutil.Sheet{Name: "Hoja2", Rows: [][]any{{"Other"}}},
	)

	table, err := newTestCodec().Decode(bytes.NewReader(data), "result")
	require.NoError(t, err)
	assert.Equal(t, "Hoja1", table.Name)
	assert.Equal(t, [][]string{{"Ana"}}, table.Rows)
}

func TestDecodeEmptySheet(t *testing.T) {
	data := testutil.NewWorkbook(t, testutil.Sheet{Name: "result"})

	table, err := newTestCodec().Decode(bytes.NewReader(data), "result")
	require.NoError(t, err)
	assert.Equal(t, "result", table.Name)
	assert.Empty(t, table.Columns)
	assert.Zero(t, table.Len())
}

func TestDecodeNumericCellsAsRawText(t *testing.T) {
	data := testutil.DeliveryWorkbook(t, "result",
		[]any{"Ana", 101, "Bob", "TEMU", 9876543210, "delivered"},
	)

	table, err := newTestCodec().Decode(bytes.NewReader(data), "result")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "101", table.Rows[0][1])
	assert.Equal(t, "9876543210", table.Rows[0][4])
}

func TestDecodeMalformed(t *testing.T) {
	for name, input := range map[string][]byte{
		"empty":      nil,
		"plain text": []byte("DriverName,Route\nAna,R1\n"),
		"ole header": {0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newTestCodec().Decode(bytes.NewReader(input), "result")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedWorkbook))
		})
	}
}

func TestEncodeSheetOrderAndNumbers(t *testing.T) {
	original := domain.Table{
		Name:    domain.SheetOriginal,
		Columns: []string{"DriverName", "Route"},
		Rows:    [][]string{{"Ana", "R1"}, {"", "R2"}},
	}
	summary := domain.Table{
		Name:           domain.SheetSummary,
		Columns:        domain.SummaryColumns,
		Rows:           [][]string{{"Ana", "1", "2", "0"}, {domain.TotalsLabel, "1", "2", "0"}},
		NumericColumns: []int{1, 2, 3},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestCodec().Encode(&buf, original, summary))

	data := buf.Bytes()
	assert.Equal(t, []string{domain.SheetOriginal, domain.SheetSummary}, testutil.SheetList(t, data))

	rows := testutil.ReadSheet(t, data, domain.SheetOriginal)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"", "R2"}, rows[2])

	decoded, err := newTestCodec().Decode(bytes.NewReader(data), domain.SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, domain.SummaryColumns, decoded.Columns)
	assert.Equal(t, summary.Rows, decoded.Rows)
}

func TestEncodeRequiresTables(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, newTestCodec().Encode(&buf))
}

func TestNewCodecLimits(t *testing.T) {
	c := NewCodec(Limits{MaxUnzipSize: 1 << 20, MaxUnzipXMLSize: 8 << 20})
	assert.Equal(t, int64(1<<20), c.limits.MaxUnzipXMLSize, "xml limit is capped by the archive limit")

	d := NewCodec(Limits{})
	assert.Equal(t, DefaultLimits, d.limits)
}

// typedWorkbook holds one data row with an integer, a date, a decimal with a
// custom format and a boolean.
func typedWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetName(sheet, "result"))
	header := []any{"DriverName", "TrackingNo", "Fecha", "Peso", "Firmado"}
	require.NoError(t, f.SetSheetRow("result", "A1", &header))
	row := []any{"Ana", 1234567, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), 2.5, true}
	require.NoError(t, f.SetSheetRow("result", "A2", &row))

	custom := `0.000" kg"`
	styleID, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("result", "D2", "D2", styleID))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestDecodeRecordsCellFormats(t *testing.T) {
	table, err := newTestCodec().Decode(bytes.NewReader(typedWorkbook(t)), "result")
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"Ana", "1234567", "45415", "2.5", "1"}, table.Rows[0])

	assert.Equal(t, domain.CellFormat{}, table.Format(0, 0))
	assert.Equal(t, domain.CellFormat{Kind: domain.CellNumber}, table.Format(0, 1))
	assert.Equal(t, domain.CellFormat{Kind: domain.CellNumber, NumFmt: 14}, table.Format(0, 2))
	assert.Equal(t, domain.CellNumber, table.Format(0, 3).Kind)
	assert.Equal(t, `0.000" kg"`, table.Format(0, 3).CustomNumFmt)
	assert.Equal(t, domain.CellFormat{Kind: domain.CellBool}, table.Format(0, 4))
}

func TestEncodeRestoresNumbersAndDates(t *testing.T) {
	c := newTestCodec()
	input := typedWorkbook(t)

	table, err := c.Decode(bytes.NewReader(input), "result")
	require.NoError(t, err)
	original := table.WithTrimmedHeaders()
	original.Name = domain.SheetOriginal

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, original))

	in, err := excelize.OpenReader(bytes.NewReader(input))
	require.NoError(t, err)
	defer in.Close()
	out, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer out.Close()

	tests := []struct {
		cell     string
		wantType []excelize.CellType
	}{
		{"A2", []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}},
		{"B2", []excelize.CellType{excelize.CellTypeUnset, excelize.CellTypeNumber}},
		{"C2", []excelize.CellType{excelize.CellTypeUnset, excelize.CellTypeNumber}},
		{"D2", []excelize.CellType{excelize.CellTypeUnset, excelize.CellTypeNumber}},
		{"E2", []excelize.CellType{excelize.CellTypeBool}},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			typ, err := out.GetCellType(domain.SheetOriginal, tt.cell)
			require.NoError(t, err)
			assert.Contains(t, tt.wantType, typ)

			want, err := in.GetCellValue("result", tt.cell)
			require.NoError(t, err)
			got, err := out.GetCellValue(domain.SheetOriginal, tt.cell)
			require.NoError(t, err)
			assert.Equal(t, want, got, "displayed value")
		})
	}

	styleID, err := out.GetCellStyle(domain.SheetOriginal, "C2")
	require.NoError(t, err)
	style, err := out.GetStyle(styleID)
	require.NoError(t, err)
	assert.Equal(t, 14, style.NumFmt, "date cells keep their date format")

	shown, err := out.GetCellValue(domain.SheetOriginal, "C2")
	require.NoError(t, err)
	assert.NotEqual(t, "45415", shown)
}

func TestEncodeFallsBackToTextWhenValueChanged(t *testing.T) {
	table := domain.Table{
		Name:    domain.SheetOriginal,
		Columns: []string{"TrackingNo"},
		Rows:    [][]string{{"T-1"}},
		Formats: [][]domain.CellFormat{{{Kind: domain.CellNumber}}},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestCodec().Encode(&buf, table))
	assert.Equal(t, [][]string{{"TrackingNo"}, {"T-1"}}, testutil.ReadSheet(t, buf.Bytes(), domain.SheetOriginal))
}
