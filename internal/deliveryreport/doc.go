// Package deliveryreport turns a decoded delivery sheet into a per-driver
// summary.
//
// Rows are ingested once into a typed schema (domain.DeliveryRecord) where
// every field is optional; columns absent from the upload become null
// columns. A Builder then groups the records by DriverName and counts, per
// driver:
//
//	PQ_Totales     packages (distinct routes or tracking numbers, per Variant)
//	Paradas        distinct recipients
//	Entregas_TEMU  tracking numbers billed to the TEMU account
//
// A synthetic "TOTAL GENERAL" row holding the column sums closes the table.
//
// Three rule sets are supported because the counting rules changed over
// time; see Variant. The package holds no state between calls and never
// mutates its input, so a single Builder may serve concurrent requests.
package deliveryreport
