package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"resumenapi/internal/deliveryreport"
	apierrors "resumenapi/internal/errors"
	"resumenapi/internal/infrastructure"
	"resumenapi/internal/validation"
	"resumenapi/internal/workbook"
	"resumenapi/pkg/contracts/domain"
)

// WorkbookCodec reads and writes spreadsheet files.
type WorkbookCodec interface {
	Decode(r io.Reader, preferredSheet string) (domain.Table, error)
	Encode(w io.Writer, tables ...domain.Table) error
}

// ReportBuilder computes a report from a decoded table.
type ReportBuilder interface {
	Build(ctx context.Context, table domain.Table) *domain.Report
	Variant() deliveryreport.Variant
}

// ReportProcessor is what the transport layer and the CLI depend on.
type ReportProcessor interface {
	Process(ctx context.Context, filename string, r io.Reader) (*ProcessResult, error)
	Variant() deliveryreport.Variant
}

// ProcessResult is a generated summary workbook.
type ProcessResult struct {
	Data        []byte
	Filename    string
	Report      *domain.Report
	UploadBytes int64
}

// ReportService runs uploads through the decode, build and encode steps.
type ReportService struct {
	builder     ReportBuilder
	codec       WorkbookCodec
	metrics     *infrastructure.ReportMetrics
	tracer      trace.Tracer
	logger      *slog.Logger
	sourceSheet string
}

// NewReportService wires a report service. metrics, tracer and logger may
// be nil.
func NewReportService(builder ReportBuilder, codec WorkbookCodec, metrics *infrastructure.ReportMetrics, tracer trace.Tracer, logger *slog.Logger, sourceSheet string) *ReportService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.InstrumentationName)
	}
	if sourceSheet == "" {
		sourceSheet = domain.SheetSource
	}

	logger = infrastructure.WithComponent(logger, "report_service")
	logger.Info("ReportService initialized",
		slog.String("variant", builder.Variant().String()),
		slog.String("source_sheet", sourceSheet))

	return &ReportService{
		builder:     builder,
		codec:       codec,
		metrics:     metrics,
		tracer:      tracer,
		logger:      logger,
		sourceSheet: sourceSheet,
	}
}

// Variant returns the rule set applied to every upload.
func (s *ReportService) Variant() deliveryreport.Variant {
	return s.builder.Variant()
}

// Process validates filename, reads the workbook from r and returns the
// summary workbook. Failures come back as *apierrors.AppError, or as
// *apierrors.APIError when the body could not be read. Context cancellation
// is returned as is.
func (s *ReportService) Process(ctx context.Context, filename string, r io.Reader) (*ProcessResult, error) {
	start := time.Now()
	variant := s.builder.Variant().String()

	ctx, span := s.tracer.Start(ctx, "report.process",
		trace.WithAttributes(
			attribute.String("report.filename", filename),
			attribute.String("report.variant", variant),
		))
	defer span.End()

	logger := s.logger.With(
		slog.String("filename", filename),
		slog.String("variant", variant),
	)

	fail := func(reason string, err error) (*ProcessResult, error) {
		elapsed := time.Since(start)
		span.SetAttributes(attribute.String("report.failure_reason", reason))
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordFailure(ctx, reason, elapsed)
		logger.WarnContext(ctx, "report processing failed",
			slog.String("reason", reason),
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed))
		return nil, err
	}

	if err := validation.ValidateSpreadsheetName(filename); err != nil {
		return fail(ReasonUnsupportedFile,
			apierrors.NewValidationError(validation.UnsupportedFileMessage, err).
				WithContext("filename", filename))
	}

	data, err := s.readUpload(ctx, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fail(ReasonTooLarge, apierrors.NewTooLargeError(tooLarge.Limit, err))
		case isContextError(err):
			return fail(ReasonCanceled, err)
		default:
			return fail(ReasonReadError, apierrors.InvalidRequestWithError(err))
		}
	}

	table, err := s.decode(ctx, data)
	if err != nil {
		return fail(ReasonMalformedWorkbook, apierrors.NewParsingError("could not read workbook", err))
	}

	if err := ctx.Err(); err != nil {
		return fail(ReasonCanceled, err)
	}

	report := s.build(ctx, table)

	out, err := s.encode(ctx, report)
	if err != nil {
		return fail(ReasonEncoding, apierrors.NewEncodingError("could not write summary workbook", err))
	}

	elapsed := time.Since(start)
	s.metrics.RecordSuccess(ctx, variant, table.Len(), len(report.Drivers), int64(len(data)), elapsed)
	span.SetAttributes(
		attribute.String("report.id", report.ID),
		attribute.Int("report.rows", table.Len()),
		attribute.Int("report.drivers", len(report.Drivers)),
	)

	logger.InfoContext(ctx, "report generated",
		slog.String("report_id", report.ID),
		slog.String("sheet", report.SourceSheet),
		slog.Int("rows", table.Len()),
		slog.Int("drivers", len(report.Drivers)),
		slog.Int("upload_bytes", len(data)),
		slog.Int("output_bytes", len(out)),
		slog.Duration("duration", elapsed))

	return &ProcessResult{
		Data:        out,
		Filename:    validation.OutputFilename(filename),
		Report:      report,
		UploadBytes: int64(len(data)),
	}, nil
}

func (s *ReportService) readUpload(ctx context.Context, r io.Reader) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "report.read")
	defer span.End()

	data, err := io.ReadAll(r)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("report.upload_bytes", len(data)))
	return data, nil
}

func (s *ReportService) decode(ctx context.Context, data []byte) (domain.Table, error) {
	_, span := s.tracer.Start(ctx, "report.decode",
		trace.WithAttributes(attribute.String("report.preferred_sheet", s.sourceSheet)))
	defer span.End()

	table, err := s.codec.Decode(bytes.NewReader(data), s.sourceSheet)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if !errors.Is(err, workbook.ErrMalformedWorkbook) {
			err = fmt.Errorf("%w: %v", workbook.ErrMalformedWorkbook, err)
		}
		return domain.Table{}, err
	}

	if table.Name != s.sourceSheet {
		s.logger.InfoContext(ctx, "preferred sheet not found, using first sheet",
			slog.String("preferred_sheet", s.sourceSheet),
			slog.String("sheet", table.Name))
	}
	span.SetAttributes(
		attribute.String("report.sheet", table.Name),
		attribute.Int("report.columns", len(table.Columns)),
	)
	return table, nil
}

func (s *ReportService) build(ctx context.Context, table domain.Table) *domain.Report {
	ctx, span := s.tracer.Start(ctx, "report.build")
	defer span.End()

	return s.builder.Build(ctx, table)
}

func (s *ReportService) encode(ctx context.Context, report *domain.Report) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "report.encode")
	defer span.End()

	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, report.Tables()...); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("report.output_bytes", buf.Len()))
	return buf.Bytes(), nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
