// Package http implements the HTTP handlers of the resumen service. Handlers
// stay thin: they parse the request, call the service layer and format the
// response.
//
// # Routes
//
//	POST /procesar     multipart field "file", answers with the summary workbook
//	GET  /ping         {"status":"ok"}
//	GET  /api/health   health payload
//	GET  /api/version  build information
//	GET  /metrics      Prometheus exposition
//
// # Error Handling
//
// Every failure goes through errors.ErrorHandler and is written as an
// RFC 7807 problem:
//
//	{
//	    "type": "/errors/upload/unsupported-file",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "El archivo debe ser Excel (.xls/.xlsx)",
//	    "instance": "/procesar"
//	}
//
// # Testing
//
// Handlers are tested with httptest against a mocked ReportProcessor or the
// real service built over in-memory workbooks.
package http
