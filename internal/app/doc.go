// Package app wires the resumen HTTP service together: configuration,
// logger, OpenTelemetry providers, services, handlers and the chi router.
//
// Middleware runs in this order:
//
//	RequestID -> RealIP -> OTel -> StructuredLogger -> Recoverer ->
//	SecurityHeaders -> CORS -> RateLimiter -> Timeout (per route group)
//
// The server and its graceful shutdown run under one errgroup, so a failed
// listener and a cancelled context both end Run.
package app
