package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumenapi/internal/config"
	apierrors "resumenapi/internal/errors"
	"resumenapi/internal/shared/testutil"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) *Application {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	logger, _ := testutil.NewTestLogger(t)
	application, err := NewApplication(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.OTelProviders.Shutdown(context.Background()) })
	return application
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/procesar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestApplicationPing(t *testing.T) {
	application := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestApplicationCORSWithoutCredentials(t *testing.T) {
	application := newTestApp(t, func(cfg *config.Config) { cfg.Security.AllowCredentials = false })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestApplicationProcesar(t *testing.T) {
	application := newTestApp(t, func(cfg *config.Config) { cfg.Report.Variant = "b" })

	data := testutil.DeliveryWorkbook(t, "result",
		[]any{"Ana", "R1", "Cliente 1", "TEMU", "T1", "delivered"},
		[]any{"Ana", "R2", "Cliente 2", "TEMU", "T2", "delivered"},
	)

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, uploadRequest(t, "Reporte.XLSX", data))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="resumen_Reporte.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "B", rec.Header().Get("X-Report-Variant"))

	summary := testutil.ReadSheet(t, rec.Body.Bytes(), "Resumen_por_Driver")
	assert.Equal(t, [][]string{
		{"DriverName", "PQ_Totales", "Paradas", "Entregas_TEMU"},
		{"Ana", "2", "2", "2"},
		{"TOTAL GENERAL", "2", "2", "2"},
	}, summary)
}

func TestApplicationErrorResponses(t *testing.T) {
	application := newTestApp(t, func(cfg *config.Config) {
		cfg.Upload.MaxBytes = 512
	})
	big := testutil.DeliveryWorkbook(t, "result")

	tests := []struct {
		name       string
		request    *http.Request
		wantStatus int
		wantType   string
	}{
		{"unknown route", httptest.NewRequest(http.MethodGet, "/nope", nil), http.StatusNotFound, apierrors.TypeNotFound},
		{"wrong method", httptest.NewRequest(http.MethodGet, "/procesar", nil), http.StatusMethodNotAllowed, apierrors.TypeMethodNotAllowed},
		{"unsupported file", uploadRequest(t, "datos.txt", []byte("x")), http.StatusBadRequest, apierrors.TypeUnsupportedFile},
		{"body too large", uploadRequest(t, "datos.xlsx", big), http.StatusRequestEntityTooLarge, apierrors.TypePayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			application.Router.ServeHTTP(rec, tt.request)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, apierrors.ContentTypeProblem, rec.Header().Get("Content-Type"))

			var problem map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
			assert.NotEmpty(t, problem["trace_id"])
		})
	}
}

func TestApplicationMetricsEndpoint(t *testing.T) {
	application := newTestApp(t, nil)

	application.Router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/ping"`)
}

func TestApplicationMetricsDisabled(t *testing.T) {
	application := newTestApp(t, func(cfg *config.Config) { cfg.Telemetry.EnableMetrics = false })

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplicationRejectsUnknownVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Variant = "Z"

	logger, _ := testutil.NewTestLogger(t)
	_, err := NewApplication(cfg, logger)

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeConfig, appErr.Type)
}

func TestApplicationServeAndShutdown(t *testing.T) {
	application := newTestApp(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/api/health", ln.Addr().String())
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"variant":"A"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
