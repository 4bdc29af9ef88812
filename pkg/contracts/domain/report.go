package domain

import "time"

// Report is the result of summarizing one uploaded delivery workbook.
type Report struct {
	ID          string          `json:"id" validate:"required,uuid"`
	Variant     string          `json:"variant" validate:"required,oneof=A B C"`
	SourceSheet string          `json:"source_sheet"`
	Original    Table           `json:"-"`
	Drivers     []DriverSummary `json:"drivers"`
	Totals      DriverSummary   `json:"totals"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// SummaryTable renders the per-driver rows followed by the totals row.
func (r *Report) SummaryTable() Table {
	rows := make([][]string, 0, len(r.Drivers)+1)
	for _, d := range r.Drivers {
		rows = append(rows, d.Row())
	}
	rows = append(rows, r.Totals.Row())

	return Table{
		Name:           SheetSummary,
		Columns:        append([]string(nil), SummaryColumns...),
		Rows:           rows,
		NumericColumns: []int{1, 2, 3},
	}
}

// Tables returns the sheets of the output workbook in order.
func (r *Report) Tables() []Table {
	original := r.Original
	original.Name = SheetOriginal
	return []Table{original, r.SummaryTable()}
}
