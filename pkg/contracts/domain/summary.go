package domain

import "strconv"

// Sheet names read from uploads and written to generated workbooks, and the
// synthetic totals label.
const (
	SheetSource   = "result"
	SheetOriginal = "Original"
	SheetSummary  = "Resumen_por_Driver"
	TotalsLabel   = "TOTAL GENERAL"
)

// Summary column headers, in output order.
const (
	ColumnPQTotales    = "PQ_Totales"
	ColumnParadas      = "Paradas"
	ColumnEntregasTEMU = "Entregas_TEMU"
)

// SummaryColumns is the fixed column order of the summary sheet.
var SummaryColumns = []string{
	ColumnDriverName,
	ColumnPQTotales,
	ColumnParadas,
	ColumnEntregasTEMU,
}

// DriverSummary holds the per-driver counts shown on the summary sheet.
type DriverSummary struct {
	DriverName   string `json:"driver_name"`
	PQTotales    int    `json:"pq_totales"`
	Paradas      int    `json:"paradas"`
	EntregasTEMU int    `json:"entregas_temu"`
}

// Add returns the column-wise sum of s and o, keeping s.DriverName.
func (s DriverSummary) Add(o DriverSummary) DriverSummary {
	s.PQTotales += o.PQTotales
	s.Paradas += o.Paradas
	s.EntregasTEMU += o.EntregasTEMU
	return s
}

// Row renders the summary as sheet cells in SummaryColumns order.
func (s DriverSummary) Row() []string {
	return []string{
		s.DriverName,
		strconv.Itoa(s.PQTotales),
		strconv.Itoa(s.Paradas),
		strconv.Itoa(s.EntregasTEMU),
	}
}
