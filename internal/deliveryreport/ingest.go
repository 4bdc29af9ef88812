package deliveryreport

import (
	"resumenapi/pkg/contracts/domain"
)

// IngestStats describes how an input table mapped onto the record schema.
type IngestStats struct {
	Rows           int      `json:"rows"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

// Ingest converts a decoded table into typed delivery records. Header names
// are compared after trimming whitespace; when a header repeats, the first
// occurrence wins. Columns that are not present yield null fields.
func Ingest(table domain.Table) ([]domain.DeliveryRecord, IngestStats) {
	trimmed := table.WithTrimmedHeaders()

	index := make(map[string]int, len(domain.DeliveryColumns))
	stats := IngestStats{Rows: trimmed.Len()}
	for _, name := range domain.DeliveryColumns {
		i := trimmed.ColumnIndex(name)
		if i < 0 {
			stats.MissingColumns = append(stats.MissingColumns, name)
		}
		index[name] = i
	}

	cell := func(row int, name string) domain.Cell {
		col := index[name]
		if col < 0 {
			return domain.NullCell
		}
		return domain.NewCell(trimmed.Cell(row, col))
	}

	records := make([]domain.DeliveryRecord, trimmed.Len())
	for i := range records {
		records[i] = domain.DeliveryRecord{
			DriverName:          cell(i, domain.ColumnDriverName),
			Route:               cell(i, domain.ColumnRoute),
			RecipientName:       cell(i, domain.ColumnRecipientName),
			CustomerAccountCode: cell(i, domain.ColumnCustomerAccountCode),
			TrackingNo:          cell(i, domain.ColumnTrackingNo),
			FinalStatus:         cell(i, domain.ColumnFinalStatus),
		}
	}
	return records, stats
}
