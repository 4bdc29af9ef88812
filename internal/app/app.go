package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"resumenapi/internal/config"
	"resumenapi/internal/deliveryreport"
	apierrors "resumenapi/internal/errors"
	"resumenapi/internal/infrastructure"
	customMiddleware "resumenapi/internal/middleware"
	"resumenapi/internal/services"
	handlers "resumenapi/internal/transport/http"
	"resumenapi/internal/workbook"
	"resumenapi/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	ErrorHandler  *apierrors.ErrorHandler
	ReportService *services.ReportService
	HealthService *services.HealthService
}

// NewApplication builds the application from a validated configuration.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	variant, err := deliveryreport.ParseVariant(cfg.Report.Variant)
	if err != nil {
		return nil, apierrors.NewConfigError("invalid report variant", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("variant", variant.String()),
		slog.String("source_sheet", cfg.Report.SourceSheet))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, config.AppVersion, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	if err := app.initializeServices(variant); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()
	return app, nil
}

// initializeServices builds the report pipeline and the health service.
func (a *Application) initializeServices(variant deliveryreport.Variant) error {
	reportMetrics, err := infrastructure.NewReportMetrics(a.OTelProviders.Meter)
	if err != nil {
		return fmt.Errorf("failed to create report metrics: %w", err)
	}

	codec := workbook.NewCodec(workbook.Limits{MaxUnzipSize: a.Config.Upload.MaxUnzipBytes})
	builder := deliveryreport.NewBuilder(variant, a.Logger)

	a.ReportService = services.NewReportService(
		builder,
		codec,
		reportMetrics,
		a.OTelProviders.Tracer,
		a.Logger,
		a.Config.Report.SourceSheet,
	)
	a.HealthService = services.NewHealthService(contracts.GetVersionInfo(), variant.String(), a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	// RequestID -> RealIP -> OTel -> Logger -> Recoverer
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		return err
	}
	r.Use(otelMiddleware.Handler)

	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.getCORSConfig()))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	reportHandler := handlers.NewReportHandler(a.ReportService, a.Logger, a.ErrorHandler)

	r.Get("/ping", healthHandler.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)
	})

	r.With(
		customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger),
		customMiddleware.MaxBodySize(a.Config.Upload.MaxBytes, a.ErrorHandler),
	).Mount("/procesar", reportHandler.Routes())

	metricsHandler := handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler)
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	a.Logger.Debug("Routes registered", slog.Bool("metrics_enabled", metricsHandler.Enabled()))

	a.Router = r
	return nil
}

// getCORSConfig returns the static allow-list configuration.
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", customMiddleware.RequestIDHeader},
		ExposedHeaders: []string{
			"Content-Disposition",
			handlers.HeaderReportVariant,
			handlers.HeaderReportID,
			customMiddleware.RequestIDHeader,
		},
		AllowCredentials: a.Config.Security.AllowCredentials,
		Logger:           a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(a.Logger.Handler(), slog.LevelWarn),
	}
}

// Run listens on the configured address until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve runs the server on ln and shuts it down gracefully once ctx is done.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Server listening",
			slog.String("address", ln.Addr().String()),
			slog.String("variant", a.ReportService.Variant().String()))

		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
