package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics are recorded by the OTel middleware for every request.
type HTTPMetrics struct {
	RequestsTotal   metric.Int64Counter
	RequestDuration metric.Float64Histogram
	ActiveRequests  metric.Int64UpDownCounter
}

// NewHTTPMetrics creates the HTTP server instruments on meter.
func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	requests, err := meter.Int64Counter(
		"http_requests",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"http_request_duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	active, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{
		RequestsTotal:   requests,
		RequestDuration: duration,
		ActiveRequests:  active,
	}, nil
}

// ReportMetrics describe report generation.
type ReportMetrics struct {
	ReportsProcessed   metric.Int64Counter
	ReportFailures     metric.Int64Counter
	RowsIngested       metric.Int64Counter
	DriversSummarized  metric.Int64Histogram
	UploadBytes        metric.Int64Histogram
	ProcessingDuration metric.Float64Histogram
}

// NewReportMetrics creates the report instruments on meter.
func NewReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	processed, err := meter.Int64Counter(
		"resumen_reports_processed",
		metric.WithDescription("Reports generated successfully"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"resumen_report_failures",
		metric.WithDescription("Report requests that failed, by reason"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"resumen_rows_ingested",
		metric.WithDescription("Delivery rows read from uploaded workbooks"),
	)
	if err != nil {
		return nil, err
	}

	drivers, err := meter.Int64Histogram(
		"resumen_drivers_per_report",
		metric.WithDescription("Driver rows in each generated summary"),
	)
	if err != nil {
		return nil, err
	}

	size, err := meter.Int64Histogram(
		"resumen_upload_size",
		metric.WithDescription("Size of uploaded workbooks"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"resumen_processing_duration",
		metric.WithDescription("Time spent decoding, summarizing and encoding one workbook"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &ReportMetrics{
		ReportsProcessed:   processed,
		ReportFailures:     failures,
		RowsIngested:       rows,
		DriversSummarized:  drivers,
		UploadBytes:        size,
		ProcessingDuration: duration,
	}, nil
}

// RecordSuccess records one generated report. A nil receiver is a no-op.
func (m *ReportMetrics) RecordSuccess(ctx context.Context, variant string, rows, drivers int, uploadBytes int64, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("variant", variant))

	m.ReportsProcessed.Add(ctx, 1, attrs)
	m.RowsIngested.Add(ctx, int64(rows), attrs)
	m.DriversSummarized.Record(ctx, int64(drivers), attrs)
	m.UploadBytes.Record(ctx, uploadBytes, attrs)
	m.ProcessingDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("variant", variant), attribute.String("status", "success")))
}

// RecordFailure records a failed report with a short reason label.
func (m *ReportMetrics) RecordFailure(ctx context.Context, reason string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ReportFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	m.ProcessingDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("status", "failure")))
}
