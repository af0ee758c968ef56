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

package validator

import (
	"github.com/gitopskit/strata/pkg/header"
)

// Status represents the overall validation outcome.
type Status string

const (
	// StatusValid indicates every check passed.
	StatusValid Status = "valid"

	// StatusInvalid indicates one or more checks failed.
	StatusInvalid Status = "invalid"
)

// Violation describes one semantic rule breach in a resolved configuration.
type Violation struct {
	// Field is the document path of the offending field
	// (e.g., "autoscaling.minReplicas").
	Field string `json:"field" yaml:"field"`

	// Value is the offending value in document form.
	Value string `json:"value" yaml:"value"`

	// Rule is the human-readable description of the breached rule.
	Rule string `json:"rule" yaml:"rule"`
}

// Summary contains aggregate statistics about the validation.
type Summary struct {
	// Checked is the number of checks evaluated.
	Checked int `json:"checked" yaml:"checked"`

	// Violations is the number of violations found.
	Violations int `json:"violations" yaml:"violations"`

	// Status is the overall validation status.
	Status Status `json:"status" yaml:"status"`
}

// Result represents the complete validation outcome for one resolved
// configuration. Violations appear in check order, so results are stable
// across runs for identical inputs.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	// Environment is the environment label of the validated configuration.
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`

	// Summary contains aggregate validation statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Violations contains every rule breach found, in check order.
	Violations []Violation `json:"violations" yaml:"violations"`
}

// Valid reports whether the result has no violations.
func (r *Result) Valid() bool {
	return r.Summary.Status == StatusValid
}
