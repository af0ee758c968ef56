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

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func TestRequestIDMiddleware(t *testing.T) {
	s := New()

	tests := []struct {
		name      string
		requestID string
		wantSame  bool
	}{
		{
			name:      "generates ID when missing",
			requestID: "",
			wantSame:  false,
		},
		{
			name:      "preserves valid UUID",
			requestID: "550e8400-e29b-41d4-a716-446655440000",
			wantSame:  true,
		},
		{
			name:      "replaces invalid ID",
			requestID: "not-a-uuid",
			wantSame:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCtxID string
			handler := s.requestIDMiddleware(func(_ http.ResponseWriter, r *http.Request) {
				gotCtxID, _ = r.Context().Value(contextKeyRequestID).(string)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.requestID != "" {
				req.Header.Set("X-Request-Id", tt.requestID)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			headerID := w.Header().Get("X-Request-Id")
			if headerID == "" {
				t.Fatal("expected X-Request-Id header to be set")
			}
			if headerID != gotCtxID {
				t.Errorf("header ID %q does not match context ID %q", headerID, gotCtxID)
			}
			if _, err := uuid.Parse(headerID); err != nil {
				t.Errorf("expected valid UUID, got %q", headerID)
			}
			if tt.wantSame && headerID != tt.requestID {
				t.Errorf("expected request ID %q to be preserved, got %q", tt.requestID, headerID)
			}
			if !tt.wantSame && tt.requestID != "" && headerID == tt.requestID {
				t.Errorf("expected request ID %q to be replaced", tt.requestID)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := New()
	// One request allowed, no refill within the test window.
	s.rateLimiter = rate.NewLimiter(rate.Limit(0.001), 1)

	handler := s.requestIDMiddleware(s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("expected X-RateLimit-Limit header")
	}

	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on rejection")
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		panic any
	}{
		{name: "error panic", panic: context.DeadlineExceeded},
		{name: "string panic", panic: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := s.requestIDMiddleware(s.panicRecoveryMiddleware(func(_ http.ResponseWriter, _ *http.Request) {
				panic(tt.panic)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := New()

	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{name: "no accept header", accept: "", want: "v1"},
		{name: "vendor MIME", accept: "application/vnd.gitopskit.strata.v1+json", want: "v1"},
		{name: "plain json", accept: "application/json", want: "v1"},
		{name: "unsupported version falls back", accept: "application/vnd.gitopskit.strata.v9+json", want: "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := s.versionMiddleware(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if got := w.Header().Get("X-API-Version"); got != tt.want {
				t.Errorf("expected X-API-Version %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTimeoutMiddleware(t *testing.T) {
	s := New()

	var deadlineSet bool
	handler := s.timeoutMiddleware(50*time.Millisecond, func(_ http.ResponseWriter, r *http.Request) {
		_, deadlineSet = r.Context().Deadline()
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if !deadlineSet {
		t.Error("expected request context to carry a deadline")
	}
}

func TestWithMiddlewareChain(t *testing.T) {
	s := New()

	var called bool
	handler := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.Context().Value(contextKeyRequestID) == nil {
			t.Error("expected request ID in context")
		}
		if r.Context().Value(contextKeyAPIVersion) == nil {
			t.Error("expected API version in context")
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler(w, req)

	if !called {
		t.Fatal("expected wrapped handler to be called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
	if w.Header().Get("X-API-Version") == "" {
		t.Error("expected X-API-Version header")
	}
}
