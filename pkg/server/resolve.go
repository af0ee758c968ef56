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
	"encoding/json"
	"net/http"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/errors"
	"github.com/gitopskit/strata/pkg/header"
	"github.com/gitopskit/strata/pkg/overlay"
	"github.com/gitopskit/strata/pkg/resolver"
	"github.com/gitopskit/strata/pkg/serializer"
	"github.com/gitopskit/strata/pkg/validator"
)

// maxRequestBody caps request bodies; configuration documents are small.
const maxRequestBody = 1 << 20 // 1 MiB

// ResolveRequest is the body of POST /v1/resolve.
type ResolveRequest struct {
	Base    *config.BaseConfig  `json:"base"`
	Overlay *overlay.OverlaySet `json:"overlay"`
}

// ResolveResponse pairs the resolved configuration with its validation
// result, so one round trip answers both "what would deploy" and "is it
// coherent".
type ResolveResponse struct {
	Resolved   *config.ResolvedConfig `json:"resolved"`
	Validation *validator.Result      `json:"validation"`
}

// handleResolve processes POST /v1/resolve requests: merge the overlay set
// into the base, validate the result, and return both. Structural merge
// failures (unknown field, type mismatch) map to 422 with the structured
// error code; semantic violations are not errors and come back in the
// validation result with status 200.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	var req ResolveRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	if req.Base == nil || req.Overlay == nil {
		s.writeError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Request must include base and overlay", false, nil)
		return
	}

	resolved, err := resolver.Resolve(req.Base, req.Overlay)
	if err != nil {
		status := http.StatusBadRequest
		if resolver.IsUnknownField(err) || resolver.IsTypeMismatch(err) {
			status = http.StatusUnprocessableEntity
		}
		s.writeStructuredError(w, r, status, err)
		return
	}

	result, err := s.validator.Validate(resolved)
	if err != nil {
		s.writeStructuredError(w, r, http.StatusInternalServerError, err)
		return
	}

	resolutionsTotal.WithLabelValues(string(result.Summary.Status)).Inc()

	// Stamp emitted artifacts with timestamp and server version.
	resolved.Init(header.KindResolvedConfig, config.APIVersion, s.config.Version)
	result.Init(header.KindValidationResult, config.APIVersion, s.config.Version)

	serializer.RespondJSON(w, http.StatusOK, ResolveResponse{
		Resolved:   resolved,
		Validation: result,
	})
}
