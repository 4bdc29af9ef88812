// Package services implements the business logic layer of the resumen
// service. It sits between the HTTP handlers (and the CLI) and the core
// delivery report builder, so both entry points share one pipeline.
//
// # Architecture
//
// Services follow these principles:
//
//	1. Interface-driven collaborators for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//
// # Report pipeline
//
// ReportService.Process runs one upload through these steps:
//
//	validate name -> read body -> decode workbook -> build report -> encode workbook
//
// Every step runs in its own span. Failures are returned as *errors.AppError
// values so the transport layer can map them to problem responses, and each
// failure is counted under a short reason label.
//
// # Available Services
//
//	- ReportService: Turns a delivery workbook into a summary workbook
//	- HealthService: Ping, health and version payloads
//
// # Testing
//
// Collaborators are mocked with testify/mock:
//
//	codec := new(MockCodec)
//	codec.On("Decode", mock.Anything, "result").Return(table, nil)
//	svc := NewReportService(builder, codec, nil, nil, logger, "result")
package services
