package services

// Failure reasons recorded on resumen_report_failures.
const (
	ReasonUnsupportedFile   = "unsupported_file"
	ReasonTooLarge          = "too_large"
	ReasonReadError         = "read_error"
	ReasonMalformedWorkbook = "malformed_workbook"
	ReasonEncoding          = "encoding"
	ReasonCanceled          = "canceled"
)
