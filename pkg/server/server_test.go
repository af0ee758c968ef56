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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gitopskit/strata/pkg/promotion"
	"github.com/gitopskit/strata/pkg/validator"
)

func TestNew(t *testing.T) {
	routes := map[string]http.HandlerFunc{
		"/test": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}

	s := New(WithName("strata-test"), WithVersion("0.0.1"), WithHandler(routes))
	if s == nil {
		t.Fatal("expected server instance, got nil")
		return
	}

	if s.config == nil {
		t.Error("expected config to be initialized")
	}

	if s.config.Name != "strata-test" {
		t.Errorf("expected name strata-test, got %s", s.config.Name)
	}

	if s.httpServer == nil {
		t.Error("expected httpServer to be initialized")
	}

	if s.rateLimiter == nil {
		t.Error("expected rateLimiter to be initialized")
	}

	if s.validator == nil || s.sequencer == nil {
		t.Error("expected validator and sequencer to be initialized")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := New()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
	}{
		{
			name:           "ready state",
			ready:          true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not ready state",
			ready:          false,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetReady(tt.ready)

			req := httptest.NewRequest(http.MethodGet, "/ready", nil)
			w := httptest.NewRecorder()

			s.handleReady(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestDefaultRoute(t *testing.T) {
	s := New(WithName("strata-test"), WithVersion("0.0.1"))
	s.SetReady(true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	s.handleDefault(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Name   string   `json:"name"`
		Ready  bool     `json:"ready"`
		Routes []string `json:"routes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Name != "strata-test" {
		t.Errorf("expected name strata-test, got %s", resp.Name)
	}
	if !resp.Ready {
		t.Error("expected ready true")
	}
	if len(resp.Routes) == 0 {
		t.Error("expected routes to be listed")
	}
}

func TestVersionEndpoint(t *testing.T) {
	s := New(WithName("strata-test"), WithVersion("1.2.3"))

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	w := httptest.NewRecorder()

	s.handleVersion(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp VersionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", resp.Version)
	}
	if resp.APIVersion != DefaultAPIVersion {
		t.Errorf("expected apiVersion %s, got %s", DefaultAPIVersion, resp.APIVersion)
	}
}

const baseJSON = `{
	"appVersion": "v1.4.2",
	"logLevel": "INFO",
	"replicas": 2,
	"resourceRequests": {"cpu": "100m", "memory": "128Mi"},
	"resourceLimits": {"cpu": "500m", "memory": "512Mi"},
	"ingressHost": "fastapi.local",
	"autoscaling": {
		"minReplicas": 1,
		"maxReplicas": 10,
		"cpuThresholdPct": 70,
		"memThresholdPct": 80
	}
}`

func TestResolveEndpoint(t *testing.T) {
	s := New(WithVersion("0.0.1"))

	body := `{
		"base": ` + baseJSON + `,
		"overlay": {
			"name": "staging",
			"patches": [
				{"set": {"replicas": 3, "ingressHost": "fastapi-staging.local"}}
			]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleResolve(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp ResolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Resolved == nil || resp.Validation == nil {
		t.Fatal("expected resolved config and validation result")
	}
	if resp.Resolved.Environment != "staging" {
		t.Errorf("expected environment staging, got %s", resp.Resolved.Environment)
	}
	if resp.Resolved.Spec.Replicas != 3 {
		t.Errorf("expected replicas 3, got %d", resp.Resolved.Spec.Replicas)
	}
	if resp.Validation.Summary.Status != validator.StatusValid {
		t.Errorf("expected valid result, got %s", resp.Validation.Summary.Status)
	}
	if resp.Resolved.Metadata["timestamp"] == "" {
		t.Error("expected emitted config to carry a timestamp")
	}
}

func TestResolveEndpointUnknownField(t *testing.T) {
	s := New()

	body := `{
		"base": ` + baseJSON + `,
		"overlay": {
			"name": "staging",
			"patches": [{"set": {"replcas": 3}}]
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleResolve(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d: %s", http.StatusUnprocessableEntity, w.Code, w.Body.String())
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Code != "UNKNOWN_FIELD" {
		t.Errorf("expected code UNKNOWN_FIELD, got %s", resp.Code)
	}
}

func TestResolveEndpointBadBody(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{not json`},
		{name: "missing base", body: `{"overlay": {"name": "staging", "patches": []}}`},
		{name: "unknown request field", body: `{"bsae": {}, "overlay": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			s.handleResolve(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestResolveEndpointMethodNotAllowed(t *testing.T) {
	s := New()

	req := httptest.NewRequest(http.MethodGet, "/v1/resolve", nil)
	w := httptest.NewRecorder()

	s.handleResolve(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
	if w.Header().Get("Allow") != http.MethodPost {
		t.Errorf("expected Allow POST, got %s", w.Header().Get("Allow"))
	}
}

func promotionBody(t *testing.T, stagingCPU, productionCPU int32) []byte {
	t.Helper()

	type stage struct {
		Environment string          `json:"environment"`
		Config      json.RawMessage `json:"config"`
	}

	cfg := func(env string, minReplicas, cpu int32) json.RawMessage {
		doc := map[string]any{
			"kind":        "ResolvedConfig",
			"apiVersion":  "strata.gitopskit.dev/v1alpha1",
			"overlay":     env,
			"environment": env,
			"spec": map[string]any{
				"appVersion":       "v1.4.2",
				"logLevel":         "INFO",
				"replicas":         2,
				"resourceRequests": map[string]string{"cpu": "100m", "memory": "128Mi"},
				"resourceLimits":   map[string]string{"cpu": "500m", "memory": "512Mi"},
				"ingressHost":      env + ".fastapi.local",
				"autoscaling": map[string]int32{
					"minReplicas":     minReplicas,
					"maxReplicas":     10,
					"cpuThresholdPct": cpu,
					"memThresholdPct": 80,
				},
			},
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("failed to marshal stage config: %v", err)
		}
		return raw
	}

	body, err := json.Marshal(map[string]any{
		"stages": []stage{
			{Environment: "staging", Config: cfg("staging", 1, stagingCPU)},
			{Environment: "production", Config: cfg("production", 3, productionCPU)},
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return body
}

func TestPromotionEndpointPass(t *testing.T) {
	s := New(WithVersion("0.0.1"))

	req := httptest.NewRequest(http.MethodPost, "/v1/promotion", bytes.NewReader(promotionBody(t, 70, 60)))
	w := httptest.NewRecorder()

	s.handlePromotion(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var report promotion.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if report.Summary.Status != promotion.StatusPass {
		t.Errorf("expected pass, got %s: %+v", report.Summary.Status, report.Violations)
	}
	if report.Summary.Stages != 2 {
		t.Errorf("expected 2 stages, got %d", report.Summary.Stages)
	}
}

func TestPromotionEndpointFail(t *testing.T) {
	s := New()

	// Production loosens the CPU threshold relative to staging.
	req := httptest.NewRequest(http.MethodPost, "/v1/promotion", bytes.NewReader(promotionBody(t, 60, 70)))
	w := httptest.NewRecorder()

	s.handlePromotion(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var report promotion.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}

	if report.Summary.Status != promotion.StatusFail {
		t.Errorf("expected fail, got %s", report.Summary.Status)
	}
	if len(report.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(report.Violations))
	}
	if report.Violations[0].Field != "autoscaling.cpuThresholdPct" {
		t.Errorf("unexpected violation field %s", report.Violations[0].Field)
	}
}

func TestPromotionEndpointInvalidInput(t *testing.T) {
	s := New()

	body := `{
		"stages": [
			{"environment": "staging", "config": null}
		]
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/promotion", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handlePromotion(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestPromotionEndpointCustomRules(t *testing.T) {
	s := New()

	var req map[string]any
	if err := json.Unmarshal(promotionBody(t, 70, 60), &req); err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	// Replicas must not shrink across stages; both stages carry 2.
	req["rules"] = []map[string]string{
		{"field": "replicas", "op": ">="},
	}
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/v1/promotion", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handlePromotion(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var report promotion.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Summary.Rules != 1 {
		t.Errorf("expected 1 rule, got %d", report.Summary.Rules)
	}
	if report.Summary.Status != promotion.StatusPass {
		t.Errorf("expected pass, got %s", report.Summary.Status)
	}
}

func TestRouterWiring(t *testing.T) {
	s := New(WithHandler(map[string]http.HandlerFunc{
		"/custom": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	}))
	s.SetReady(true)

	handler := s.setupRoutes()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/version", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/custom", http.StatusTeapot},
		{http.MethodGet, "/v1/resolve", http.StatusMethodNotAllowed},
		{http.MethodGet, "/v1/promotion", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestShutdown(t *testing.T) {
	s := New()
	s.SetReady(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}

	s.mu.RLock()
	ready := s.ready
	s.mu.RUnlock()
	if ready {
		t.Error("expected server to be not ready after shutdown")
	}
}
