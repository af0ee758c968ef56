// Package logging provides structured logging utilities for strata components.
//
// # Overview
//
// This package wraps the standard library slog package with strata-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("strata", "v1.0.0")
//
//	    slog.Info("resolving configuration", "environment", "staging")
//	}
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug strata resolve -b base.yaml -s staging.yaml
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// All logs are written to stderr in JSON format so that command output on
// stdout remains machine-parseable.
//
// Note that the pure computation packages (resolver, validator, promotion)
// deliberately do not log; logging happens at the CLI and server layers.
package logging
