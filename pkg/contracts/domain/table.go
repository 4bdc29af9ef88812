package domain

import "strings"

// CellKind is how a worksheet cell was stored.
type CellKind uint8

const (
	CellText CellKind = iota
	CellNumber
	CellBool
)

// CellFormat describes a stored cell that is not plain text. Dates are
// numbers carrying a date number format.
type CellFormat struct {
	Kind         CellKind
	NumFmt       int
	CustomNumFmt string
}

// Table is a decoded worksheet: a header row plus data rows of raw cell text.
// Rows may be shorter than Columns; missing trailing cells are empty.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`

	// NumericColumns marks column positions whose cells are integers and
	// should be encoded as numbers rather than text.
	NumericColumns []int `json:"numeric_columns,omitempty"`

	// Formats is parallel to Rows. A nil row, or a missing entry, is text.
	Formats [][]CellFormat `json:"-"`
}

// ColumnIndex returns the position of the named column, or -1 when absent.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the raw value at row/col, or "" when the row is short.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Format returns the stored format of the cell at row/col.
func (t Table) Format(row, col int) CellFormat {
	if row < 0 || row >= len(t.Formats) || col < 0 || col >= len(t.Formats[row]) {
		return CellFormat{}
	}
	return t.Formats[row][col]
}

// WithTrimmedHeaders returns a copy of t whose column names have surrounding
// whitespace removed. Row data and formats are copied, never shared with t.
func (t Table) WithTrimmedHeaders() Table {
	out := Table{
		Name:    t.Name,
		Columns: make([]string, len(t.Columns)),
		Rows:    make([][]string, len(t.Rows)),

		NumericColumns: append([]int(nil), t.NumericColumns...),
	}
	for i, c := range t.Columns {
		out.Columns[i] = strings.TrimSpace(c)
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	if t.Formats != nil {
		out.Formats = make([][]CellFormat, len(t.Formats))
		for i, f := range t.Formats {
			out.Formats[i] = append([]CellFormat(nil), f...)
		}
	}
	return out
}

// Len returns the number of data rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// IsNumeric reports whether col is listed in NumericColumns.
func (t Table) IsNumeric(col int) bool {
	for _, c := range t.NumericColumns {
		if c == col {
			return true
		}
	}
	return false
}
