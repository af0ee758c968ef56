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
	"fmt"

	"github.com/gitopskit/strata/pkg/config"
	"github.com/gitopskit/strata/pkg/errors"
	"github.com/gitopskit/strata/pkg/header"
)

// Stage is one step of a promotion pipeline: an environment label and the
// resolved configuration deployed there. Pipelines order stages from lowest
// risk to highest (e.g., dev, staging, production).
type Stage struct {
	// Environment is the stage's environment label.
	Environment string `json:"environment" yaml:"environment"`

	// Config is the resolved configuration for the stage.
	Config *config.ResolvedConfig `json:"config" yaml:"config"`
}

// Option is a functional option for configuring a Sequencer.
type Option func(*Sequencer)

// WithRules replaces the default rule set.
func WithRules(rules []Rule) Option {
	return func(s *Sequencer) {
		s.Rules = rules
	}
}

// WithVersion sets the sequencer version recorded in report metadata.
func WithVersion(version string) Option {
	return func(s *Sequencer) {
		s.Version = version
	}
}

// Sequencer checks that configurations tighten monotonically along a
// promotion pipeline. A single Sequencer is safe for concurrent use.
type Sequencer struct {
	// Rules are the comparator rules evaluated over each adjacent stage
	// pair, in order.
	Rules []Rule

	// Version is recorded in report metadata when set.
	Version string
}

// New creates a Sequencer with the default rules, then applies options.
func New(opts ...Option) *Sequencer {
	s := &Sequencer{
		Rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check evaluates every rule over every adjacent stage pair and returns the
// complete set of violations. A rule breach is never an error; errors cover
// malformed input only (missing stage config, empty environment, unknown
// rule field, unparsable appVersion). Pipelines with fewer than two stages
// have no pairs to compare and trivially pass.
//
// Check is pure: it does not log, touch the clock, or mutate its input.
func (s *Sequencer) Check(stages []Stage) (*Report, error) {
	if err := validateStages(stages); err != nil {
		return nil, err
	}
	if err := validateRules(s.Rules); err != nil {
		return nil, err
	}

	pipeline := make([]string, 0, len(stages))
	for _, stage := range stages {
		pipeline = append(pipeline, stage.Environment)
	}

	violations := []Violation{}
	for i := 1; i < len(stages); i++ {
		earlier, later := stages[i-1], stages[i]

		for _, rule := range s.Rules {
			cmp, err := compareField(rule.Field, &earlier.Config.Spec, &later.Config.Spec)
			if err != nil {
				return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("cannot evaluate rule %q between %s and %s",
						rule.String(), earlier.Environment, later.Environment),
					err, map[string]any{
						"field": rule.Field,
						"from":  earlier.Environment,
						"to":    later.Environment,
					})
			}

			holds := cmp >= 0
			if rule.Op == OperatorLTE {
				holds = cmp <= 0
			}
			if holds {
				continue
			}

			violations = append(violations, Violation{
				Field:     rule.Field,
				Op:        rule.Op,
				From:      earlier.Environment,
				To:        later.Environment,
				FromValue: fieldValue(rule.Field, &earlier.Config.Spec),
				ToValue:   fieldValue(rule.Field, &later.Config.Spec),
				Rule:      ruleText(rule, earlier.Environment),
			})
		}
	}

	status := StatusPass
	if len(violations) > 0 {
		status = StatusFail
	}

	report := &Report{
		Header: header.Header{
			Kind:       header.KindPromotionReport,
			APIVersion: config.APIVersion,
		},
		Pipeline: pipeline,
		Summary: Summary{
			Stages:     len(stages),
			Rules:      len(s.Rules),
			Violations: len(violations),
			Status:     status,
		},
		Violations: violations,
	}
	if s.Version != "" {
		report.Metadata = map[string]string{"version": s.Version}
	}
	return report, nil
}

func validateStages(stages []Stage) error {
	seen := make(map[string]bool, len(stages))
	for i, stage := range stages {
		if stage.Environment == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"stage environment cannot be empty", map[string]any{"index": i})
		}
		if stage.Config == nil {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"stage configuration cannot be nil", map[string]any{"environment": stage.Environment})
		}
		if seen[stage.Environment] {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"duplicate stage environment", map[string]any{"environment": stage.Environment})
		}
		seen[stage.Environment] = true
	}
	return nil
}

func validateRules(rules []Rule) error {
	if len(rules) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "promotion rule set cannot be empty")
	}
	for _, rule := range rules {
		if !rule.Op.IsValid() {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"promotion rule has invalid operator", map[string]any{
					"field":    rule.Field,
					"operator": string(rule.Op),
				})
		}
	}
	return nil
}

func ruleText(rule Rule, from string) string {
	if rule.Description != "" {
		return rule.Description
	}
	return fmt.Sprintf("%s must be %s its value in %s", rule.Field, rule.Op, from)
}
