package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumenapi/internal/config"
	"resumenapi/internal/infrastructure"
)

func TestOTelMiddlewareRecordsRouteMetrics(t *testing.T) {
	cfg := config.Default().Telemetry
	providers, err := infrastructure.InitializeOTel(cfg, config.AppVersion, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	m, err := NewOTelMiddleware(providers)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	metrics := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := metrics.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `route="/ping"`)
	assert.Contains(t, body, `status_code="200"`)
}
