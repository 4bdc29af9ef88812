package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"resumenapi/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	info      contracts.VersionInfo
	variant   string
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Variant   string                 `json:"variant,omitempty"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
}

// NewHealthService creates a health service reporting build information and
// the active report variant.
func NewHealthService(info contracts.VersionInfo, variant string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", info.Version),
		slog.String("git_commit", info.GitCommit),
		slog.String("variant", variant))

	return &HealthService{
		info:      info,
		variant:   variant,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Ping is the minimal liveness payload.
func (hs *HealthService) Ping() map[string]string {
	return map[string]string{"status": "ok"}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   hs.info.Version,
		Variant:   hs.variant,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"goroutines":     runtime.NumGoroutine(),
		},
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status))

	return status
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":    hs.info.Version,
		"variant":    hs.variant,
		"build_time": hs.info.BuildTime,
		"git_commit": hs.info.GitCommit,
		"go_version": hs.info.GoVersion,
		"os":         hs.info.OS,
		"arch":       hs.info.Architecture,
		"start_time": hs.startTime.UTC().Format(time.RFC3339),
	}
}
