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
	"github.com/gitopskit/strata/pkg/promotion"
	"github.com/gitopskit/strata/pkg/serializer"
)

// PromotionRequest is the body of POST /v1/promotion. Stages are ordered
// earliest to latest. Rules is optional; when omitted the default safety
// rules apply.
type PromotionRequest struct {
	Stages []promotion.Stage `json:"stages"`
	Rules  []promotion.Rule  `json:"rules,omitempty"`
}

// handlePromotion processes POST /v1/promotion requests. A failed check is
// not an error: the report comes back with status 200 and failure details.
// Malformed input (duplicate stage, unknown rule field) maps to 400.
func (s *Server) handlePromotion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method})
		return
	}

	var req PromotionRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	seq := s.sequencer
	if len(req.Rules) > 0 {
		seq = promotion.New(
			promotion.WithRules(req.Rules),
			promotion.WithVersion(s.config.Version),
		)
	}

	report, err := seq.Check(req.Stages)
	if err != nil {
		s.writeStructuredError(w, r, http.StatusBadRequest, err)
		return
	}

	promotionChecksTotal.WithLabelValues(string(report.Summary.Status)).Inc()

	report.Init(header.KindPromotionReport, config.APIVersion, s.config.Version)

	serializer.RespondJSON(w, http.StatusOK, report)
}
