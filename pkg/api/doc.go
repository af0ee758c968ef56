// Package api provides the HTTP API entry point for the strata service.
//
// This package acts as a thin wrapper around the reusable pkg/server package:
// it configures structured logging with the application name and version and
// delegates server lifecycle management. The resolution and promotion routes
// are built into pkg/server itself.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/gitopskit/strata/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application endpoints (with rate limiting):
//   - POST /v1/resolve   - Resolve a base config against an overlay set
//   - POST /v1/promotion - Check a promotion pipeline against safety rules
//
// System endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /version - Build identity
//   - GET /metrics - Prometheus metrics
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - SHUTDOWN_TIMEOUT_SECONDS: Graceful shutdown budget (default: 30)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/gitopskit/strata/pkg/api.version=1.0.0'"
package api
