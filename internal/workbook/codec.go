package workbook

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"resumenapi/pkg/contracts/domain"
)

// ErrMalformedWorkbook is returned when the input cannot be read as a workbook.
var ErrMalformedWorkbook = errors.New("malformed workbook")

// Limits bounds the resources excelize may spend on one decode.
type Limits struct {
	// MaxUnzipSize caps the total uncompressed size of the archive.
	MaxUnzipSize int64
	// MaxUnzipXMLSize caps a single worksheet XML before excelize spills it to disk.
	MaxUnzipXMLSize int64
}

// DefaultLimits is applied when a Codec is built without explicit limits.
var DefaultLimits = Limits{
	MaxUnzipSize:    256 << 20,
	MaxUnzipXMLSize: 16 << 20,
}

// Codec decodes and encodes workbooks. The zero value uses DefaultLimits.
type Codec struct {
	limits Limits
}

// NewCodec returns a codec bounded by limits. Zero fields take the defaults.
func NewCodec(limits Limits) *Codec {
	if limits.MaxUnzipSize <= 0 {
		limits.MaxUnzipSize = DefaultLimits.MaxUnzipSize
	}
	if limits.MaxUnzipXMLSize <= 0 {
		limits.MaxUnzipXMLSize = DefaultLimits.MaxUnzipXMLSize
	}
	if limits.MaxUnzipXMLSize > limits.MaxUnzipSize {
		limits.MaxUnzipXMLSize = limits.MaxUnzipSize
	}
	return &Codec{limits: limits}
}

// Decode reads preferredSheet from r, or the first sheet when no sheet has
// that name. The first row becomes the header; shorter rows are padded with
// empty cells to the header width. Cells keep their raw text, and number and
// boolean cells are recorded in Table.Formats so Encode can restore them.
func (c *Codec) Decode(r io.Reader, preferredSheet string) (domain.Table, error) {
	limits := c.limitsOrDefault()

	f, err := excelize.OpenReader(r, excelize.Options{
		UnzipSizeLimit:    limits.MaxUnzipSize,
		UnzipXMLSizeLimit: limits.MaxUnzipXMLSize,
	})
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return domain.Table{}, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList(), preferredSheet)
	if sheet == "" {
		return domain.Table{}, fmt.Errorf("%w: workbook has no sheets", ErrMalformedWorkbook)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Table{}, fmt.Errorf("%w: read sheet %q: %v", ErrMalformedWorkbook, sheet, err)
	}

	table := domain.Table{Name: sheet}
	if len(rows) == 0 {
		return table, nil
	}

	table.Columns = append([]string(nil), rows[0]...)
	width := len(table.Columns)
	table.Rows = make([][]string, 0, len(rows)-1)
	table.Formats = make([][]domain.CellFormat, 0, len(rows)-1)
	styles := make(map[int]domain.CellFormat)
	for i, row := range rows[1:] {
		formats, err := cellFormats(f, sheet, i+2, row, styles)
		if err != nil {
			return domain.Table{}, fmt.Errorf("%w: read cell types of %q: %v", ErrMalformedWorkbook, sheet, err)
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		table.Rows = append(table.Rows, row)
		table.Formats = append(table.Formats, formats)
	}
	return table, nil
}

// cellFormats returns the format of every number or boolean cell in row, or
// nil when the row holds only text. Cells without a type attribute are
// numbers. styles caches number formats by style id.
func cellFormats(f *excelize.File, sheet string, rowNum int, row []string, styles map[int]domain.CellFormat) ([]domain.CellFormat, error) {
	var formats []domain.CellFormat
	for col, v := range row {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return nil, err
		}
		typ, err := f.GetCellType(sheet, cell)
		if err != nil {
			return nil, err
		}

		var format domain.CellFormat
		switch typ {
		case excelize.CellTypeBool:
			format.Kind = domain.CellBool
		case excelize.CellTypeUnset, excelize.CellTypeNumber:
			if format, err = numberFormat(f, sheet, cell, styles); err != nil {
				return nil, err
			}
		default:
			continue
		}

		if formats == nil {
			formats = make([]domain.CellFormat, len(row))
		}
		formats[col] = format
	}
	return formats, nil
}

func numberFormat(f *excelize.File, sheet, cell string, styles map[int]domain.CellFormat) (domain.CellFormat, error) {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return domain.CellFormat{}, err
	}
	if format, ok := styles[styleID]; ok {
		return format, nil
	}

	format := domain.CellFormat{Kind: domain.CellNumber}
	if style, err := f.GetStyle(styleID); err == nil {
		format.NumFmt = style.NumFmt
		if style.CustomNumFmt != nil {
			format.CustomNumFmt = *style.CustomNumFmt
		}
	}
	styles[styleID] = format
	return format, nil
}

// Encode writes tables to w as an .xlsx workbook, one sheet per table in
// order. Cells in numeric columns are written as integers when they parse;
// cells with a recorded format are written back as numbers or booleans with
// their number format.
func (c *Codec) Encode(w io.Writer, tables ...domain.Table) error {
	if len(tables) == 0 {
		return errors.New("encode workbook: no tables")
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.Name); err != nil {
				return fmt.Errorf("rename sheet %q: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("create sheet %q: %w", t.Name, err)
		}

		if err := writeTable(f, t); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (c *Codec) limitsOrDefault() Limits {
	if c == nil || c.limits.MaxUnzipSize <= 0 {
		return DefaultLimits
	}
	return c.limits
}

func pickSheet(sheets []string, preferred string) string {
	for _, s := range sheets {
		if s == preferred {
			return s
		}
	}
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0]
}

func writeTable(f *excelize.File, t domain.Table) error {
	if len(t.Columns) > 0 {
		header := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			header[i] = c
		}
		if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
			return fmt.Errorf("write header of %q: %w", t.Name, err)
		}
	}

	styles := make(map[domain.CellFormat]int)
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(t, i, j, v)
		}
		if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+2, t.Name, err)
		}
		if err := applyNumberFormats(f, t, i, styles); err != nil {
			return err
		}
	}
	return nil
}

// applyNumberFormats restores number formats (dates included) on row.
func applyNumberFormats(f *excelize.File, t domain.Table, row int, styles map[domain.CellFormat]int) error {
	for col, v := range t.Rows[row] {
		format := t.Format(row, col)
		if v == "" || format.Kind != domain.CellNumber || (format.NumFmt == 0 && format.CustomNumFmt == "") {
			continue
		}

		styleID, ok := styles[format]
		if !ok {
			style := &excelize.Style{NumFmt: format.NumFmt}
			if format.CustomNumFmt != "" {
				custom := format.CustomNumFmt
				style.CustomNumFmt = &custom
			}
			var err error
			if styleID, err = f.NewStyle(style); err != nil {
				return fmt.Errorf("create number format for %q: %w", t.Name, err)
			}
			styles[format] = styleID
		}

		cell, err := excelize.CoordinatesToCellName(col+1, row+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(t.Name, cell, cell, styleID); err != nil {
			return fmt.Errorf("format cell %s of %q: %w", cell, t.Name, err)
		}
	}
	return nil
}

// cellValue returns nil for empty cells so they stay blank in the output.
// Values that no longer parse as their recorded kind are written as text.
func cellValue(t domain.Table, row, col int, v string) any {
	if v == "" {
		return nil
	}
	if t.IsNumeric(col) {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	switch t.Format(row, col).Kind {
	case domain.CellNumber:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			return x
		}
	case domain.CellBool:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return v
}
