// Copyright (c) 2025, Strata Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server implements the strata HTTP API: manifest resolution and
// promotion sequence checks over a stateless REST surface.
//
// # Architecture
//
// The server wraps the pure resolver, validator, and promotion packages with
// the operational layer they deliberately omit:
//
//   - Rate limiting using a token bucket (golang.org/x/time/rate)
//   - Request ID tracking via X-Request-Id (github.com/google/uuid)
//   - Prometheus RED metrics plus domain counters per outcome
//   - Panic recovery and per-handler timeouts
//   - Graceful shutdown and health/readiness probes for Kubernetes
//
// Resource headers (timestamps, server version metadata) are stamped here,
// at the emission boundary, never inside the core packages.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("strata-api-server"),
//	    server.WithVersion("1.0.0"),
//	)
//	if err := s.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # API Endpoints
//
// POST /v1/resolve - Merge an overlay set into a base config and validate
// the result. Structural merge failures (unknown field, type mismatch)
// return 422; semantic rule violations are reported in the 200 response.
//
// POST /v1/promotion - Check a resolved-config pipeline against promotion
// rules. A failing pipeline is a 200 with a fail report; malformed input
// (duplicate stage, unknown rule field) is a 400.
//
// System endpoints (no rate limiting): GET /health, /ready, /version,
// /metrics, and / (service descriptor).
//
// # Error Handling
//
// All errors share one JSON envelope with a code from pkg/errors, the
// request ID, and a retryable hint:
//
//	{
//	  "code": "UNKNOWN_FIELD",
//	  "message": "unknown field in overlay",
//	  "details": {"environment": "staging", "path": "autoscaling.minReplica"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-08-23T12:00:00Z",
//	  "retryable": false
//	}
//
// # Configuration
//
// Environment variables: PORT (default 8080) and SHUTDOWN_TIMEOUT_SECONDS
// (default 30, tune to the pod eviction grace period).
package server
