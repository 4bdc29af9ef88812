package http

import (
	"net/http"

	apierrors "resumenapi/internal/errors"
)

// MetricsHandler exposes the Prometheus registry. It answers 404 when
// metrics are disabled.
type MetricsHandler struct {
	exposition   http.Handler
	errorHandler *apierrors.ErrorHandler
}

// NewMetricsHandler wraps the exposition handler, which may be nil.
func NewMetricsHandler(exposition http.Handler, errorHandler *apierrors.ErrorHandler) *MetricsHandler {
	return &MetricsHandler{exposition: exposition, errorHandler: errorHandler}
}

// Enabled reports whether a registry is being served.
func (h *MetricsHandler) Enabled() bool {
	return h.exposition != nil
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.exposition == nil {
		h.errorHandler.NotFound(w, r)
		return
	}
	h.exposition.ServeHTTP(w, r)
}
