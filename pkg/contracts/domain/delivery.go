package domain

// Column names expected in an uploaded delivery workbook.
const (
	ColumnDriverName          = "DriverName"
	ColumnRoute               = "Route"
	ColumnRecipientName       = "RecipientName"
	ColumnCustomerAccountCode = "customerAccountCode"
	ColumnTrackingNo          = "TrackingNo"
	ColumnFinalStatus         = "FinalStatus"
)

// DeliveryColumns lists the columns every DeliveryRecord carries, in ingestion order.
var DeliveryColumns = []string{
	ColumnDriverName,
	ColumnRoute,
	ColumnRecipientName,
	ColumnCustomerAccountCode,
	ColumnTrackingNo,
	ColumnFinalStatus,
}

// Cell is an optional spreadsheet value. Valid is false for blank cells and
// for columns that were missing from the upload.
type Cell struct {
	Value string
	Valid bool
}

// NewCell builds a Cell from raw cell text; empty text is null.
func NewCell(raw string) Cell {
	if raw == "" {
		return Cell{}
	}
	return Cell{Value: raw, Valid: true}
}

// NullCell is the value of every cell in a synthesized column.
var NullCell = Cell{}

// DeliveryRecord is one row of the uploaded delivery sheet.
type DeliveryRecord struct {
	DriverName          Cell
	Route               Cell
	RecipientName       Cell
	CustomerAccountCode Cell
	TrackingNo          Cell
	FinalStatus         Cell
}
