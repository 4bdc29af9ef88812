package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "resumenapi/internal/errors"
	"resumenapi/internal/services"
)

// FileField is the multipart field carrying the upload.
const FileField = "file"

// ContentTypeXLSX is the media type of generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Response headers describing the generated report.
const (
	HeaderReportVariant = "X-Report-Variant"
	HeaderReportID      = "X-Report-ID"
)

// ReportHandler serves the upload endpoint.
type ReportHandler struct {
	service      services.ReportProcessor
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service services.ReportProcessor, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Process)
	return r
}

// Process handles POST /procesar. The upload is streamed from the multipart
// body straight into the service; other form fields are skipped.
func (h *ReportHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mr, err := r.MultipartReader()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			h.errorHandler.HandleError(w, r, apierrors.ErrMissingFile)
			return
		}
		if err != nil {
			h.errorHandler.HandleError(w, r, uploadError(err))
			return
		}

		if part.FormName() != FileField || part.FileName() == "" {
			_ = part.Close()
			continue
		}

		h.logger.DebugContext(ctx, "upload received",
			slog.String("filename", part.FileName()),
			slog.String("content_type", part.Header.Get("Content-Type")))

		result, err := h.service.Process(ctx, part.FileName(), part)
		_ = part.Close()
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}

		h.writeWorkbook(w, r, result)
		return
	}
}

func (h *ReportHandler) writeWorkbook(w http.ResponseWriter, r *http.Request, result *services.ProcessResult) {
	header := w.Header()
	header.Set("Content-Type", ContentTypeXLSX)
	header.Set("Content-Disposition", contentDisposition(result.Filename))
	header.Set("Content-Length", strconv.Itoa(len(result.Data)))
	header.Set(HeaderReportVariant, result.Report.Variant)
	header.Set(HeaderReportID, result.Report.ID)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(result.Data); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write workbook response",
			slog.String("filename", result.Filename),
			slog.String("error", err.Error()))
	}
}

// contentDisposition quotes plain ASCII names and falls back to the RFC 2231
// encoding for anything else.
func contentDisposition(filename string) string {
	for _, c := range filename {
		if c < 0x20 || c > 0x7e || c == '"' || c == '\\' {
			return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
		}
	}
	return `attachment; filename="` + filename + `"`
}

// uploadError keeps size errors intact so they map to 413 and reports any
// other multipart failure as a bad request.
func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return apierrors.InvalidRequestWithError(err)
}
