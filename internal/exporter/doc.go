// Package exporter writes report tables as CSV files.
//
// CSVWriter is used by the command line tool to emit the per-driver summary
// next to the generated workbook. Files start with a UTF-8 BOM by default so
// Excel opens accented driver names correctly.
//
//	w := exporter.NewCSVWriter(logger)
//	path, err := w.WriteReport(outDir, "entregas.xlsx", report)
package exporter
