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

package promotion

import (
	"github.com/gitopskit/strata/pkg/header"
)

// Status represents the overall promotion check outcome.
type Status string

const (
	// StatusPass indicates every rule held across every adjacent stage pair.
	StatusPass Status = "pass"

	// StatusFail indicates at least one rule was violated.
	StatusFail Status = "fail"
)

// Violation describes one rule breach between two adjacent pipeline stages.
type Violation struct {
	// Field is the document path of the constrained field.
	Field string `json:"field" yaml:"field"`

	// Op is the comparison direction that failed to hold.
	Op Operator `json:"op" yaml:"op"`

	// From is the environment label of the earlier (lower-risk) stage.
	From string `json:"from" yaml:"from"`

	// To is the environment label of the later (higher-risk) stage.
	To string `json:"to" yaml:"to"`

	// FromValue and ToValue are the field values in document form.
	FromValue string `json:"fromValue" yaml:"fromValue"`
	ToValue   string `json:"toValue" yaml:"toValue"`

	// Rule is the human-readable description of the breached rule.
	Rule string `json:"rule" yaml:"rule"`
}

// Summary contains aggregate statistics about a promotion check.
type Summary struct {
	// Stages is the number of pipeline stages checked.
	Stages int `json:"stages" yaml:"stages"`

	// Rules is the number of rules evaluated per stage pair.
	Rules int `json:"rules" yaml:"rules"`

	// Violations is the number of rule breaches found.
	Violations int `json:"violations" yaml:"violations"`

	// Status is the overall outcome.
	Status Status `json:"status" yaml:"status"`
}

// Report represents the complete outcome of a promotion sequence check.
// Violations appear in pipeline order, rule order within each stage pair.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Pipeline lists the stage environments in promotion order.
	Pipeline []string `json:"pipeline" yaml:"pipeline"`

	// Summary contains aggregate check statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Violations contains every rule breach found.
	Violations []Violation `json:"violations" yaml:"violations"`
}

// Passed reports whether the sequence satisfied every rule.
func (r *Report) Passed() bool {
	return r.Summary.Status == StatusPass
}
